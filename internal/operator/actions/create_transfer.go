package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// CreateTransfer writes every leg pair of a transfer and recalculates both accounts.
type CreateTransfer struct {
	Planner *ledger.Planner
	Request ledger.TransferRequest

	// FirstLegID is the outgoing leg of the first occurrence.
	FirstLegID uuid.UUID
}

func (c *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	req := c.Request
	if err := req.Validate(); err != nil {
		return err
	}

	locked, err := lockOwned(ctx, writer, req.OwnerID, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return err
	}

	pairs, err := c.Planner.PlanTransfer(req, locked[req.FromAccountID], locked[req.ToAccountID])
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if err = writer.Entries.Insert(ctx, p.Out); err != nil {
			return err
		}
		if err = writer.Entries.Insert(ctx, p.In); err != nil {
			return err
		}
	}

	if _, err = recalculate(ctx, writer, req.FromAccountID, req.ToAccountID); err != nil {
		return err
	}
	c.FirstLegID = pairs[0].Out.ID
	return nil
}
