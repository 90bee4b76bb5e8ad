package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/entry"
)

// EntryService handles entry business logic.
type EntryService struct {
	storage *storage.Storage
	proc    processor
	planner *ledger.Planner
}

// NewEntryService creates a new EntryService.
func NewEntryService(store *storage.Storage, proc processor, planner *ledger.Planner) *EntryService {
	return &EntryService{storage: store, proc: proc, planner: planner}
}

// CreateEntry persists the request's series and returns the ids of every row.
func (s *EntryService) CreateEntry(ctx context.Context, req ledger.EntryRequest) ([]uuid.UUID, error) {
	action := &actions.CreateEntry{Planner: s.planner, Request: req}
	if err := s.proc.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.IDs, nil
}

func (s *EntryService) UpdateEntry(ctx context.Context, ownerID, id uuid.UUID, changes actions.EntryChanges) (*ledger.Entry, error) {
	action := &actions.UpdateEntry{OwnerID: ownerID, ID: id, Changes: changes}
	if err := s.proc.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Entry, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.proc.Process(ctx, &actions.DeleteEntry{OwnerID: ownerID, ID: id})
}

// CompleteEntry completes the entry, or for a fixed-monthly template the
// occurrence in the period of occurrenceDate, and returns the completed row's id.
func (s *EntryService) CompleteEntry(ctx context.Context, ownerID, id uuid.UUID, occurrenceDate *time.Time) (uuid.UUID, error) {
	action := &actions.CompleteEntry{Planner: s.planner, OwnerID: ownerID, ID: id, OccurrenceDate: occurrenceDate}
	if err := s.proc.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.CompletedID, nil
}

// ListEntries returns a page of entries using cursor-based pagination.
func (s *EntryService) ListEntries(ctx context.Context, ownerID uuid.UUID, accountID *uuid.UUID, cursor *EntryCursor) ([]*ledger.Entry, *EntryCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &entry.EntryFilter{
		OwnerID:         ownerID,
		AccountID:       accountID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Reader.Entries.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *EntryCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := newestCreation(rows)
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &EntryCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}

// newestCreation pins later pages to rows that existed when the first page was read.
func newestCreation(rows []*ledger.Entry) time.Time {
	var newest time.Time
	for _, r := range rows {
		if r.CreatedAt.After(newest) {
			newest = r.CreatedAt
		}
	}
	return newest
}

// MonthlyDashboard lists the month's persisted entries plus the projected
// occurrences of earlier fixed-monthly templates, ordered by date.
func (s *EntryService) MonthlyDashboard(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) ([]ledger.DashboardLine, error) {
	if month < time.January || month > time.December {
		return nil, ledger.Invalid("month", "must be between 1 and 12")
	}

	from, to := ledger.MonthBounds(year, month)
	entries, err := s.storage.Reader.Entries.ListByPeriod(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	templates, err := s.storage.Reader.Entries.ListFixedMonthlyTemplates(ctx, ownerID, from)
	if err != nil {
		return nil, err
	}
	return ledger.BuildDashboard(year, month, entries, templates, s.planner.Policy), nil
}
