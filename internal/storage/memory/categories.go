package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/category"
)

var _ category.ICategoryWriter = (*categories)(nil)

type categories struct {
	v *view
}

func (t *categories) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Category, error) {
	d, done := t.v.read()
	defer done()
	c, ok := d.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, ledger.NotFound("category", id)
	}
	return &c, nil
}

func (t *categories) FindByName(_ context.Context, ownerID uuid.UUID, name string) (*ledger.Category, error) {
	d, done := t.v.read()
	defer done()
	for _, c := range d.categories {
		if c.OwnerID == ownerID && c.Name == name {
			return &c, nil
		}
	}
	return nil, ledger.NotFound("category", uuid.Nil)
}

func (t *categories) List(_ context.Context, ownerID uuid.UUID) ([]*ledger.Category, error) {
	d, done := t.v.read()
	var out []*ledger.Category
	for _, c := range d.categories {
		if c.OwnerID == ownerID {
			out = append(out, &c)
		}
	}
	done()

	slices.SortFunc(out, func(a, b *ledger.Category) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	return out, nil
}

func (t *categories) Insert(_ context.Context, c *ledger.Category) error {
	d := t.v.write()
	if _, exists := d.categories[c.ID]; exists {
		return fmt.Errorf("insert category: duplicate id %s", c.ID)
	}
	for _, existing := range d.categories {
		if existing.OwnerID == c.OwnerID && existing.Name == c.Name {
			return ledger.Invalid("name", "category %q already exists", c.Name)
		}
	}
	d.categories[c.ID] = *c
	return nil
}

func (t *categories) Delete(_ context.Context, id uuid.UUID) error {
	d := t.v.write()
	delete(d.categories, id)
	for entryID, e := range d.entries {
		if e.CategoryID.Valid && e.CategoryID.UUID == id {
			e.CategoryID = uuid.NullUUID{}
			d.entries[entryID] = e
		}
	}
	for ruleID, r := range d.rules {
		if r.CategoryID.Valid && r.CategoryID.UUID == id {
			r.CategoryID = uuid.NullUUID{}
			d.rules[ruleID] = r
		}
	}
	return nil
}
