package rule

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

var _ IRuleReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectRules(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
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

func (r *Reader) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.RecurringRule, error) {
	query := selectRules(
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	found, err := bob.One(ctx, r.exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFound("recurring rule", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find recurring rule %s: %w", id, err)
	}
	return rowToRule(found), nil
}

func (r *Reader) List(ctx context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error) {
	query := selectRules(
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy(psql.Quote("start_date")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return r.all(ctx, query)
}

func (r *Reader) ListActive(ctx context.Context, today time.Time) ([]*ledger.RecurringRule, error) {
	today = ledger.DateOf(today)
	query := selectRules(
		sm.Where(psql.Quote("start_date").LTE(psql.Arg(today))),
		sm.Where(psql.Or(
			psql.Quote("end_date").IsNull(),
			psql.Quote("end_date").GTE(psql.Arg(today)),
		)),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return r.all(ctx, query)
}

func (r *Reader) all(ctx context.Context, query bob.Query) ([]*ledger.RecurringRule, error) {
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	result := make([]*ledger.RecurringRule, len(rows))
	for i, rr := range rows {
		result[i] = rowToRule(rr)
	}
	return result, nil
}
