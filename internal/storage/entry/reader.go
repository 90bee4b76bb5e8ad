package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

var _ IEntryReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectEntries(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = psql.Quote(c)
	}
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(cols...),
		sm.From(tableName),
	}
	return psql.Select(append(base, queryMods...)...)
}

func col(name string) dialect.Expression {
	return psql.Quote(name)
}

func ownedBy(ownerID uuid.UUID) bob.Mod[*dialect.SelectQuery] {
	return sm.Where(col("owner_id").EQ(psql.Arg(ownerID)))
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Entry, error) {
	query := selectEntries(
		sm.Where(col("id").EQ(psql.Arg(id))),
		ownedBy(ownerID),
	)
	return findOne(ctx, r.exec, query, id)
}

// List orders by date then creation, newest first.
func (r *Reader) List(ctx context.Context, filter *EntryFilter) ([]*ledger.Entry, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		queryMods = append(queryMods, ownedBy(filter.OwnerID))
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(col("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(col("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(col("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(col("date")).Desc(),
		sm.OrderBy(col("created_at")).Desc(),
		sm.OrderBy(col("id")).Desc(),
	)
	return findAll(ctx, r.exec, selectEntries(queryMods...))
}

func (r *Reader) ListByPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*ledger.Entry, error) {
	query := selectEntries(
		ownedBy(ownerID),
		sm.Where(col("date").GTE(psql.Arg(from))),
		sm.Where(col("date").LT(psql.Arg(to))),
		sm.OrderBy(col("date")).Asc(),
		sm.OrderBy(col("id")).Asc(),
	)
	return findAll(ctx, r.exec, query)
}

func (r *Reader) ListFixedMonthlyTemplates(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*ledger.Entry, error) {
	query := selectEntries(
		ownedBy(ownerID),
		sm.Where(col("frequency").EQ(psql.Arg(string(ledger.FrequencyFixedMonthly)))),
		sm.Where(col("installment_number").LTE(psql.Arg(1))),
		sm.Where(col("date").LT(psql.Arg(before))),
		sm.OrderBy(col("date")).Asc(),
		sm.OrderBy(col("id")).Asc(),
	)
	return findAll(ctx, r.exec, query)
}

func findOne(ctx context.Context, exec bob.Executor, query bob.Query, id uuid.UUID) (*ledger.Entry, error) {
	found, err := bob.One(ctx, exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFound("entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find entry %s: %w", id, err)
	}
	return rowToEntry(found), nil
}

func findAll(ctx context.Context, exec bob.Executor, query bob.Query) ([]*ledger.Entry, error) {
	rows, err := bob.All(ctx, exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	result := make([]*ledger.Entry, len(rows))
	for i, e := range rows {
		result[i] = rowToEntry(e)
	}
	return result, nil
}
