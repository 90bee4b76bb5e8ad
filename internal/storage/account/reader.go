package account

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

const defaultLimit = 20

var _ IAccountReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func selectAccounts(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(quoted(columns)...),
		sm.From(tableName),
	}
	return psql.Select(append(base, queryMods...)...)
}

func (r *Reader) List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error) {
	limit := defaultLimit
	offset := 0
	var ownerID uuid.UUID
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
		ownerID = filter.OwnerID
	}

	query := selectAccounts(
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Limit(limit+1),
		sm.Offset(offset),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	if len(rows) == 0 {
		return &AccountListResult{Accounts: nil, NextCursor: nil}, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	result := make([]*ledger.Account, len(rows))
	for i, a := range rows {
		result[i] = rowToAccount(a)
	}
	return &AccountListResult{Accounts: result, NextCursor: nextCursor}, nil
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	query := selectAccounts(
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	return findOne(ctx, r.exec, query, id)
}

func findOne(ctx context.Context, exec bob.Executor, query bob.Query, id uuid.UUID) (*ledger.Account, error) {
	found, err := bob.One(ctx, exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFound("account", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}
	return rowToAccount(found), nil
}

func quoted(cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = psql.Quote(c)
	}
	return out
}
