package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// ActivateDueEntries completes every pending entry dated on or before Today
// and recalculates each affected account once.
type ActivateDueEntries struct {
	Today time.Time

	Result ledger.ActivationResult
}

func (a *ActivateDueEntries) Perform(ctx context.Context, writer *storage.Writer) error {
	today := ledger.DateOf(a.Today)
	due, err := writer.Entries.ListDue(ctx, today)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		a.Result = ledger.ActivationResult{}
		return nil
	}

	ids := make([]uuid.UUID, 0, len(due))
	seen := make(map[uuid.UUID]bool)
	var touched []uuid.UUID
	for _, e := range due {
		ids = append(ids, e.ID)
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			touched = append(touched, e.AccountID)
		}
	}

	if err = writer.Entries.MarkCompleted(ctx, ids, today); err != nil {
		return err
	}

	missing, err := recalculate(ctx, writer, touched...)
	if err != nil {
		return err
	}
	gone := make(map[uuid.UUID]bool, len(missing))
	for _, id := range missing {
		gone[id] = true
		logrus.WithFields(logrus.Fields{
			"accountID": id,
			"date":      today.Format(time.DateOnly),
		}).Warn("ActivateDueEntries.AccountMissing")
	}

	updated := make([]uuid.UUID, 0, len(touched))
	for _, id := range touched {
		if !gone[id] {
			updated = append(updated, id)
		}
	}

	a.Result = ledger.ActivationResult{
		Activated:       len(ids),
		AccountsTouched: updated,
		MissingAccounts: missing,
	}
	return nil
}
