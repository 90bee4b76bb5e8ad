package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// DeleteCategory removes a category; entries that used it become uncategorized.
type DeleteCategory struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Categories.FindByID(ctx, d.OwnerID, d.ID); err != nil {
		return err
	}
	return writer.Categories.Delete(ctx, d.ID)
}
