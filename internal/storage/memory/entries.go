package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/entry"
)

var _ entry.IEntryWriter = (*entries)(nil)

type entries struct {
	v *view
}

func byDateAsc(a, b *ledger.Entry) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
}

func (t *entries) filter(keep func(e *ledger.Entry) bool) []*ledger.Entry {
	d, done := t.v.read()
	defer done()
	var out []*ledger.Entry
	for _, e := range d.entries {
		e = copyEntry(e)
		if keep(&e) {
			out = append(out, &e)
		}
	}
	return out
}

func (t *entries) first(keep func(e *ledger.Entry) bool, order func(a, b *ledger.Entry) int) (*ledger.Entry, bool) {
	matches := t.filter(keep)
	if len(matches) == 0 {
		return nil, false
	}
	slices.SortFunc(matches, order)
	return matches[0], true
}

func (t *entries) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Entry, error) {
	e, ok := t.first(func(e *ledger.Entry) bool { return e.ID == id && e.OwnerID == ownerID }, byDateAsc)
	if !ok {
		return nil, ledger.NotFound("entry", id)
	}
	return e, nil
}

func (t *entries) List(_ context.Context, filter *entry.EntryFilter) ([]*ledger.Entry, error) {
	f := entry.EntryFilter{}
	if filter != nil {
		f = *filter
	}
	out := t.filter(func(e *ledger.Entry) bool {
		if e.OwnerID != f.OwnerID {
			return false
		}
		if f.AccountID != nil && e.AccountID != *f.AccountID {
			return false
		}
		if f.CategoryID != nil && (!e.CategoryID.Valid || e.CategoryID.UUID != *f.CategoryID) {
			return false
		}
		return f.MaxCreationTime == nil || !e.CreatedAt.After(*f.MaxCreationTime)
	})
	slices.SortFunc(out, func(a, b *ledger.Entry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID.Bytes(), a.ID.Bytes())
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit+1 {
		out = out[:f.Limit+1]
	}
	return out, nil
}

func (t *entries) ListByPeriod(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]*ledger.Entry, error) {
	out := t.filter(func(e *ledger.Entry) bool {
		return e.OwnerID == ownerID && !e.Date.Before(from) && e.Date.Before(to)
	})
	slices.SortFunc(out, byDateAsc)
	return out, nil
}

func (t *entries) ListFixedMonthlyTemplates(_ context.Context, ownerID uuid.UUID, before time.Time) ([]*ledger.Entry, error) {
	out := t.filter(func(e *ledger.Entry) bool {
		return e.OwnerID == ownerID && e.IsFixedMonthlyTemplate() && e.Date.Before(before)
	})
	slices.SortFunc(out, byDateAsc)
	return out, nil
}

func (t *entries) FindOccurrence(_ context.Context, recurrenceID, accountID uuid.UUID, installmentNumber int) (*ledger.Entry, error) {
	e, ok := t.first(func(e *ledger.Entry) bool {
		return e.RecurrenceID.Valid && e.RecurrenceID.UUID == recurrenceID &&
			e.AccountID == accountID && e.InstallmentNumber == installmentNumber
	}, byDateAsc)
	if !ok {
		return nil, ledger.NotFound("entry", recurrenceID)
	}
	return e, nil
}

func (t *entries) FindTransferCounterpart(_ context.Context, leg *ledger.Entry) (*ledger.Entry, error) {
	e, ok := t.first(func(e *ledger.Entry) bool {
		if !e.TransferID.Valid || e.TransferID != leg.TransferID || e.ID == leg.ID {
			return false
		}
		if leg.ToAccountID.Valid && e.AccountID != leg.ToAccountID.UUID {
			return false
		}
		return e.InstallmentNumber == leg.InstallmentNumber && e.Type == leg.Type.Opposite()
	}, byDateAsc)
	if !ok {
		return nil, ledger.NotFound("entry", leg.TransferID.UUID)
	}
	return e, nil
}

func (t *entries) CompletedTotals(_ context.Context, accountID uuid.UUID) (ledger.Totals, error) {
	return ledger.SumCompleted(accountID, t.filter(func(e *ledger.Entry) bool { return e.AccountID == accountID })), nil
}

func (t *entries) ListDue(_ context.Context, today time.Time) ([]*ledger.Entry, error) {
	today = ledger.DateOf(today)
	out := t.filter(func(e *ledger.Entry) bool {
		return !e.IsCompleted() && !e.Date.After(today)
	})
	slices.SortFunc(out, byDateAsc)
	return out, nil
}

func (t *entries) ExistsForRule(_ context.Context, ruleID uuid.UUID, date time.Time) (bool, error) {
	date = ledger.DateOf(date)
	_, ok := t.first(func(e *ledger.Entry) bool {
		return e.RuleID.Valid && e.RuleID.UUID == ruleID && e.Date.Equal(date)
	}, byDateAsc)
	return ok, nil
}

func (t *entries) Insert(_ context.Context, e *ledger.Entry) error {
	d := t.v.write()
	if _, exists := d.entries[e.ID]; exists {
		return fmt.Errorf("insert entry: duplicate id %s", e.ID)
	}
	if err := checkReferences(d, e); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	if err := checkOccurrence(d, e); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	if e.RuleID.Valid {
		for _, existing := range d.entries {
			if existing.RuleID == e.RuleID && existing.Date.Equal(ledger.DateOf(e.Date)) {
				return fmt.Errorf("insert entry: rule %s already has an entry on %s", e.RuleID.UUID, e.Date.Format(time.DateOnly))
			}
		}
	}
	stored := copyEntry(*e)
	stored.Date = ledger.DateOf(stored.Date)
	d.entries[e.ID] = stored
	return nil
}

func (t *entries) Update(_ context.Context, e *ledger.Entry) error {
	d := t.v.write()
	stored, ok := d.entries[e.ID]
	if !ok {
		return nil
	}
	if err := checkReferences(d, e); err != nil {
		return fmt.Errorf("update entry %s: %w", e.ID, err)
	}
	if err := checkOccurrence(d, e); err != nil {
		return fmt.Errorf("update entry %s: %w", e.ID, err)
	}
	stored.AccountID = e.AccountID
	stored.ToAccountID = e.ToAccountID
	stored.CategoryID = e.CategoryID
	stored.Type = e.Type
	stored.Amount = e.Amount
	stored.Date = ledger.DateOf(e.Date)
	stored.Status = e.Status
	stored.CompletionDate = copyEntry(*e).CompletionDate
	stored.Description = e.Description
	d.entries[e.ID] = stored
	return nil
}

func (t *entries) Delete(_ context.Context, id uuid.UUID) error {
	delete(t.v.write().entries, id)
	return nil
}

func (t *entries) MarkCompleted(_ context.Context, ids []uuid.UUID, on time.Time) error {
	d := t.v.write()
	for _, id := range ids {
		e, ok := d.entries[id]
		if !ok {
			continue
		}
		e.Complete(on)
		d.entries[id] = e
	}
	return nil
}

// checkOccurrence keeps one row per series, account and installment number.
func checkOccurrence(d *dataset, e *ledger.Entry) error {
	if !e.RecurrenceID.Valid {
		return nil
	}
	for id, existing := range d.entries {
		if id != e.ID && existing.RecurrenceID == e.RecurrenceID &&
			existing.AccountID == e.AccountID && existing.InstallmentNumber == e.InstallmentNumber {
			return fmt.Errorf("occurrence %d of series %s already exists in account %s",
				e.InstallmentNumber, e.RecurrenceID.UUID, e.AccountID)
		}
	}
	return nil
}

func checkReferences(d *dataset, e *ledger.Entry) error {
	if _, ok := d.accounts[e.AccountID]; !ok {
		return fmt.Errorf("account %s does not exist", e.AccountID)
	}
	if e.ToAccountID.Valid {
		if _, ok := d.accounts[e.ToAccountID.UUID]; !ok {
			return fmt.Errorf("account %s does not exist", e.ToAccountID.UUID)
		}
	}
	if e.CategoryID.Valid {
		if _, ok := d.categories[e.CategoryID.UUID]; !ok {
			return fmt.Errorf("category %s does not exist", e.CategoryID.UUID)
		}
	}
	return nil
}
