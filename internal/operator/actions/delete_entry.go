package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// DeleteEntry removes one entry. Series siblings survive; a transfer leg
// takes its counterpart of the same occurrence with it.
type DeleteEntry struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	e, err := writer.Entries.FindByID(ctx, d.OwnerID, d.ID)
	if err != nil {
		return err
	}

	doomed := []*ledger.Entry{e}
	if e.Kind() == ledger.KindTransferLeg {
		counterpart, err := writer.Entries.FindTransferCounterpart(ctx, e)
		if err != nil && !ledger.IsNotFound(err) {
			return err
		}
		if err == nil {
			doomed = append(doomed, counterpart)
		}
	}

	accounts := make([]uuid.UUID, 0, len(doomed))
	for _, x := range doomed {
		accounts = append(accounts, x.AccountID)
	}
	if _, err = lockOwned(ctx, writer, d.OwnerID, accounts...); err != nil {
		return err
	}

	for _, x := range doomed {
		if err = writer.Entries.Delete(ctx, x.ID); err != nil {
			return err
		}
	}

	_, err = recalculate(ctx, writer, accounts...)
	return err
}
