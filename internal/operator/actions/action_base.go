package actions

import (
	"bytes"
	"context"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// IAction is one mutating operation. Perform runs inside a single write
// transaction; any returned error rolls the whole transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// distinctSorted drops duplicates and nil ids and orders the rest so that
// row locks are always taken in the same order.
func distinctSorted(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return slices.Compact(out)
}

// lockOwned locks the owner's accounts for the rest of the transaction.
// An account of another owner is reported as not found.
func lockOwned(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, ids ...uuid.UUID) (map[uuid.UUID]*ledger.Account, error) {
	locked := make(map[uuid.UUID]*ledger.Account, len(ids))
	for _, id := range distinctSorted(ids) {
		a, err := writer.Accounts.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if a.OwnerID != ownerID {
			return nil, ledger.NotFound("account", id)
		}
		locked[id] = a
	}
	return locked, nil
}

// recalculate rewrites the stored balance of each account from its completed
// entries. Accounts that no longer exist are skipped and returned.
func recalculate(ctx context.Context, writer *storage.Writer, ids ...uuid.UUID) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range distinctSorted(ids) {
		a, err := writer.Accounts.FindByIDForUpdate(ctx, id)
		if ledger.IsNotFound(err) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, err
		}

		totals, err := writer.Entries.CompletedTotals(ctx, id)
		if err != nil {
			return nil, err
		}
		if err = writer.Accounts.UpdateBalance(ctx, id, ledger.Balance(a.InitialBalance, totals)); err != nil {
			return nil, err
		}
	}
	return missing, nil
}

// checkCategory resolves an optional category through the owner.
func checkCategory(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, categoryID uuid.NullUUID) error {
	if !categoryID.Valid {
		return nil
	}
	_, err := writer.Categories.FindByID(ctx, ownerID, categoryID.UUID)
	return err
}
