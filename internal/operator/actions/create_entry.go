package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// CreateEntry expands a request into its series and persists every row.
type CreateEntry struct {
	Planner *ledger.Planner
	Request ledger.EntryRequest

	// IDs lists the persisted rows; the first is the template or first installment.
	IDs []uuid.UUID
}

func (c *CreateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	entries, err := c.Planner.PlanEntries(c.Request)
	if err != nil {
		return err
	}

	if _, err = lockOwned(ctx, writer, c.Request.OwnerID, c.Request.AccountID); err != nil {
		return err
	}
	if err = checkCategory(ctx, writer, c.Request.OwnerID, c.Request.CategoryID); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if err = writer.Entries.Insert(ctx, e); err != nil {
			return err
		}
		ids = append(ids, e.ID)
	}

	if _, err = recalculate(ctx, writer, c.Request.AccountID); err != nil {
		return err
	}
	c.IDs = ids
	return nil
}
