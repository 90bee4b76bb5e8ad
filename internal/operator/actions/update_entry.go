package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// EntryChanges holds the editable fields of an entry; nil fields are left alone.
type EntryChanges struct {
	AccountID   *uuid.UUID
	Type        *ledger.EntryType
	Amount      *decimal.Decimal
	Date        *time.Time
	CategoryID  *uuid.NullUUID
	Description *string
}

// UpdateEntry edits one row. When the entry moves to another account both
// accounts are recalculated.
type UpdateEntry struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
	Changes EntryChanges

	Entry *ledger.Entry
}

func (u *UpdateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	e, err := writer.Entries.FindByID(ctx, u.OwnerID, u.ID)
	if err != nil {
		return err
	}
	c := u.Changes
	previousAccount := e.AccountID
	previousDate := e.Date

	if e.Kind() == ledger.KindTransferLeg {
		if err = checkLegChanges(e, c); err != nil {
			return err
		}
	}

	accounts := []uuid.UUID{previousAccount}
	if c.AccountID != nil {
		accounts = append(accounts, *c.AccountID)
	}
	if _, err = lockOwned(ctx, writer, u.OwnerID, accounts...); err != nil {
		return err
	}

	if c.AccountID != nil {
		e.AccountID = *c.AccountID
	}
	if c.Type != nil {
		e.Type = *c.Type
	}
	if c.Amount != nil {
		e.Amount = *c.Amount
	}
	if c.Date != nil {
		e.Date = ledger.DateOf(*c.Date)
	}
	if c.CategoryID != nil {
		if err = checkCategory(ctx, writer, u.OwnerID, *c.CategoryID); err != nil {
			return err
		}
		e.CategoryID = *c.CategoryID
	}
	if c.Description != nil {
		e.Description = *c.Description
	}

	if err = e.Validate(); err != nil {
		return err
	}
	if err = writer.Entries.Update(ctx, e); err != nil {
		return err
	}

	// the counterpart leg follows a date change so the pair stays aligned
	if e.Kind() == ledger.KindTransferLeg && !e.Date.Equal(previousDate) {
		counterpart, err := writer.Entries.FindTransferCounterpart(ctx, e)
		switch {
		case ledger.IsNotFound(err):
		case err != nil:
			return err
		default:
			counterpart.Date = e.Date
			if err = writer.Entries.Update(ctx, counterpart); err != nil {
				return err
			}
		}
	}

	if _, err = recalculate(ctx, writer, previousAccount, e.AccountID); err != nil {
		return err
	}
	u.Entry = e
	return nil
}

// checkLegChanges allows only the fields that keep a transfer pair symmetric.
func checkLegChanges(e *ledger.Entry, c EntryChanges) error {
	if c.AccountID != nil && *c.AccountID != e.AccountID {
		return ledger.Invalid("account", "transfer legs cannot move to another account")
	}
	if c.Type != nil && *c.Type != e.Type {
		return ledger.Invalid("transactionType", "transfer legs cannot change direction")
	}
	if c.Amount != nil && !c.Amount.Equal(e.Amount) {
		return ledger.Invalid("amount", "transfer legs cannot change amount")
	}
	return nil
}
