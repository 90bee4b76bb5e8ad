package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/account"
)

const defaultAccountLimit = 20

var _ account.IAccountWriter = (*accounts)(nil)

type accounts struct {
	v *view
}

func (t *accounts) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	d, done := t.v.read()
	defer done()
	a, ok := d.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ledger.NotFound("account", id)
	}
	return &a, nil
}

func (t *accounts) List(_ context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	limit := defaultAccountLimit
	offset := 0
	var ownerID uuid.UUID
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
		ownerID = filter.OwnerID
	}

	d, done := t.v.read()
	var owned []*ledger.Account
	for _, a := range d.accounts {
		if a.OwnerID == ownerID {
			owned = append(owned, &a)
		}
	}
	done()

	slices.SortFunc(owned, func(a, b *ledger.Account) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})

	if offset >= len(owned) {
		return &account.AccountListResult{}, nil
	}
	owned = owned[offset:]

	var nextCursor *account.AccountCursor
	if len(owned) > limit {
		owned = owned[:limit]
		nextCursor = &account.AccountCursor{Position: offset + limit, Limit: limit}
	}
	return &account.AccountListResult{Accounts: owned, NextCursor: nextCursor}, nil
}

func (t *accounts) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	a, ok := t.v.write().accounts[id]
	if !ok {
		return nil, ledger.NotFound("account", id)
	}
	return &a, nil
}

func (t *accounts) Insert(_ context.Context, a *ledger.Account) error {
	d := t.v.write()
	if _, exists := d.accounts[a.ID]; exists {
		return fmt.Errorf("insert account: duplicate id %s", a.ID)
	}
	d.accounts[a.ID] = *a
	return nil
}

func (t *accounts) Update(_ context.Context, a *ledger.Account) error {
	d := t.v.write()
	stored, ok := d.accounts[a.ID]
	if !ok {
		return nil
	}
	stored.Name = a.Name
	stored.Type = a.Type
	d.accounts[a.ID] = stored
	return nil
}

func (t *accounts) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	d := t.v.write()
	stored, ok := d.accounts[id]
	if !ok {
		return nil
	}
	stored.Balance = balance
	d.accounts[id] = stored
	return nil
}

// Delete applies the same cascades as the postgres foreign keys.
func (t *accounts) Delete(_ context.Context, id uuid.UUID) error {
	d := t.v.write()
	delete(d.accounts, id)

	removedRules := make(map[uuid.UUID]bool)
	for ruleID, r := range d.rules {
		if r.AccountID == id {
			removedRules[ruleID] = true
			delete(d.rules, ruleID)
		}
	}

	for entryID, e := range d.entries {
		if e.AccountID == id {
			delete(d.entries, entryID)
			continue
		}
		changed := false
		if e.ToAccountID.Valid && e.ToAccountID.UUID == id {
			e.ToAccountID = uuid.NullUUID{}
			changed = true
		}
		if e.RuleID.Valid && removedRules[e.RuleID.UUID] {
			e.RuleID = uuid.NullUUID{}
			changed = true
		}
		if changed {
			d.entries[entryID] = e
		}
	}
	return nil
}
