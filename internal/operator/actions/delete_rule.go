package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// DeleteRule stops a rule. Entries it already created are kept.
type DeleteRule struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteRule) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Rules.FindByID(ctx, d.OwnerID, d.ID); err != nil {
		return err
	}
	return writer.Rules.Delete(ctx, d.ID)
}
