package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/rule"
)

var _ rule.IRuleWriter = (*rules)(nil)

type rules struct {
	v *view
}

func (t *rules) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.RecurringRule, error) {
	d, done := t.v.read()
	defer done()
	r, ok := d.rules[id]
	if !ok || r.OwnerID != ownerID {
		return nil, ledger.NotFound("recurring rule", id)
	}
	r = copyRule(r)
	return &r, nil
}

func (t *rules) List(_ context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error) {
	out := t.filter(func(r *ledger.RecurringRule) bool { return r.OwnerID == ownerID })
	slices.SortFunc(out, func(a, b *ledger.RecurringRule) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	return out, nil
}

func (t *rules) ListActive(_ context.Context, today time.Time) ([]*ledger.RecurringRule, error) {
	today = ledger.DateOf(today)
	out := t.filter(func(r *ledger.RecurringRule) bool {
		if r.StartDate.After(today) {
			return false
		}
		return r.EndDate == nil || !r.EndDate.Before(today)
	})
	slices.SortFunc(out, func(a, b *ledger.RecurringRule) int {
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	return out, nil
}

func (t *rules) filter(keep func(r *ledger.RecurringRule) bool) []*ledger.RecurringRule {
	d, done := t.v.read()
	defer done()
	var out []*ledger.RecurringRule
	for _, r := range d.rules {
		r = copyRule(r)
		if keep(&r) {
			out = append(out, &r)
		}
	}
	return out
}

func (t *rules) Insert(_ context.Context, r *ledger.RecurringRule) error {
	d := t.v.write()
	if _, exists := d.rules[r.ID]; exists {
		return fmt.Errorf("insert recurring rule: duplicate id %s", r.ID)
	}
	if _, ok := d.accounts[r.AccountID]; !ok {
		return fmt.Errorf("insert recurring rule: account %s does not exist", r.AccountID)
	}
	d.rules[r.ID] = copyRule(*r)
	return nil
}

func (t *rules) Delete(_ context.Context, id uuid.UUID) error {
	d := t.v.write()
	delete(d.rules, id)
	for entryID, e := range d.entries {
		if e.RuleID.Valid && e.RuleID.UUID == id {
			e.RuleID = uuid.NullUUID{}
			d.entries[entryID] = e
		}
	}
	return nil
}
