package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

var _ ICategoryReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectCategories(ownerID uuid.UUID, queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = psql.Quote(c)
	}
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(cols...),
		sm.From(tableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	return psql.Select(append(base, queryMods...)...)
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Category, error) {
	query := selectCategories(ownerID, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
	found, err := bob.One(ctx, r.exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFound("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find category %s: %w", id, err)
	}
	return rowToCategory(found), nil
}

func (r *Reader) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*ledger.Category, error) {
	query := selectCategories(ownerID, sm.Where(psql.Quote("name").EQ(psql.Arg(name))))
	found, err := bob.One(ctx, r.exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFound("category", uuid.Nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	return rowToCategory(found), nil
}

func (r *Reader) List(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Category, error) {
	query := selectCategories(ownerID,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result := make([]*ledger.Category, len(rows))
	for i, c := range rows {
		result[i] = rowToCategory(c)
	}
	return result, nil
}
