package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// Recalculate reconciles one account's stored balance with its entries.
type Recalculate struct {
	OwnerID uuid.UUID
	ID      uuid.UUID

	Balance decimal.Decimal
}

func (r *Recalculate) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockOwned(ctx, writer, r.OwnerID, r.ID); err != nil {
		return err
	}
	if _, err := recalculate(ctx, writer, r.ID); err != nil {
		return err
	}

	a, err := writer.Accounts.FindByID(ctx, r.OwnerID, r.ID)
	if err != nil {
		return err
	}
	r.Balance = a.Balance
	return nil
}
