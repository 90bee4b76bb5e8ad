package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// RenameAccount changes the display fields of an account. Balances are not editable.
type RenameAccount struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
	Name    string
	Type    ledger.AccountType

	Account *ledger.Account
}

func (r *RenameAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	locked, err := lockOwned(ctx, writer, r.OwnerID, r.ID)
	if err != nil {
		return err
	}

	a := locked[r.ID]
	a.Name = r.Name
	a.Type = r.Type
	if err = a.Validate(); err != nil {
		return err
	}
	if err = writer.Accounts.Update(ctx, a); err != nil {
		return err
	}
	r.Account = a
	return nil
}
