package actions

import (
	"context"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

type CreateCategory struct {
	Category *ledger.Category
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := c.Category.Validate(); err != nil {
		return err
	}

	_, err := writer.Categories.FindByName(ctx, c.Category.OwnerID, c.Category.Name)
	if err == nil {
		return ledger.Invalid("name", "category %q already exists", c.Category.Name)
	}
	if !ledger.IsNotFound(err) {
		return err
	}
	return writer.Categories.Insert(ctx, c.Category)
}
