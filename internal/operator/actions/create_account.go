package actions

import (
	"context"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// CreateAccount opens an account whose balance starts at its initial balance.
type CreateAccount struct {
	Account *ledger.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := c.Account.Validate(); err != nil {
		return err
	}
	c.Account.Balance = c.Account.InitialBalance
	return writer.Accounts.Insert(ctx, c.Account)
}
