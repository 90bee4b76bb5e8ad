package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// DeleteAccount removes the account and its entries. Transfer legs on other
// accounts survive with their counterpart cleared.
type DeleteAccount struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockOwned(ctx, writer, d.OwnerID, d.ID); err != nil {
		return err
	}
	return writer.Accounts.Delete(ctx, d.ID)
}
