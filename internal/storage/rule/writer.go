package rule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

var _ IRuleWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, rule *ledger.RecurringRule) error {
	var end sql.NullTime
	if rule.EndDate != nil {
		end = sql.NullTime{Time: ledger.DateOf(*rule.EndDate), Valid: true}
	}
	query := psql.Insert(
		im.Into(tableName, columns...),
		im.Values(
			psql.Arg(rule.ID),
			psql.Arg(rule.OwnerID),
			psql.Arg(rule.AccountID),
			psql.Arg(rule.CategoryID),
			psql.Arg(string(rule.Type)),
			psql.Arg(rule.Amount),
			psql.Arg(rule.Description),
			psql.Arg(string(rule.Frequency)),
			psql.Arg(ledger.DateOf(rule.StartDate)),
			psql.Arg(end),
			psql.Arg(rule.CreatedAt),
		),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("insert recurring rule: %w", err)
	}
	return nil
}

// Delete leaves entries the rule created in place; their rule_id is nulled.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("delete recurring rule %s: %w", id, err)
	}
	return nil
}
