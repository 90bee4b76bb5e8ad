package actions

import (
	"context"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

type CreateRule struct {
	Rule *ledger.RecurringRule
}

func (c *CreateRule) Perform(ctx context.Context, writer *storage.Writer) error {
	r := c.Rule
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := writer.Accounts.FindByID(ctx, r.OwnerID, r.AccountID); err != nil {
		return err
	}
	if err := checkCategory(ctx, writer, r.OwnerID, r.CategoryID); err != nil {
		return err
	}
	return writer.Rules.Insert(ctx, r)
}
