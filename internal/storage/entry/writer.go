package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

var _ IEntryWriter = (*Writer)(nil)

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

func (w *Writer) FindOccurrence(ctx context.Context, recurrenceID, accountID uuid.UUID, installmentNumber int) (*ledger.Entry, error) {
	query := selectEntries(
		sm.Where(col("recurrence_id").EQ(psql.Arg(recurrenceID))),
		sm.Where(col("account_id").EQ(psql.Arg(accountID))),
		sm.Where(col("installment_number").EQ(psql.Arg(installmentNumber))),
	)
	return findOne(ctx, w.tx, query, recurrenceID)
}

func (w *Writer) FindTransferCounterpart(ctx context.Context, leg *ledger.Entry) (*ledger.Entry, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(col("transfer_id").EQ(psql.Arg(leg.TransferID.UUID))),
		sm.Where(col("installment_number").EQ(psql.Arg(leg.InstallmentNumber))),
		sm.Where(col("transaction_type").EQ(psql.Arg(string(leg.Type.Opposite())))),
		sm.Where(col("id").NE(psql.Arg(leg.ID))),
	}
	if leg.ToAccountID.Valid {
		mods = append(mods, sm.Where(col("account_id").EQ(psql.Arg(leg.ToAccountID.UUID))))
	}
	mods = append(mods, sm.Limit(1))
	return findOne(ctx, w.tx, selectEntries(mods...), leg.TransferID.UUID)
}

type totalsRow struct {
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// CompletedTotals sums the completed income and expense of one account.
func (w *Writer) CompletedTotals(ctx context.Context, accountID uuid.UUID) (ledger.Totals, error) {
	query := psql.Select(
		sm.Columns(
			psql.Raw("COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income"),
			psql.Raw("COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0) AS expense"),
		),
		sm.From(tableName),
		sm.Where(col("account_id").EQ(psql.Arg(accountID))),
		sm.Where(col("completion_date").IsNotNull()),
	)
	totals, err := bob.One(ctx, w.tx, query, scan.StructMapper[totalsRow]())
	if err != nil {
		return ledger.Totals{}, fmt.Errorf("completed totals %s: %w", accountID, err)
	}
	return ledger.Totals{Income: totals.Income, Expense: totals.Expense}, nil
}

func (w *Writer) ListDue(ctx context.Context, today time.Time) ([]*ledger.Entry, error) {
	query := selectEntries(
		sm.Where(col("completion_date").IsNull()),
		sm.Where(col("date").LTE(psql.Arg(ledger.DateOf(today)))),
		sm.OrderBy(col("date")).Asc(),
		sm.OrderBy(col("id")).Asc(),
		sm.ForUpdate(),
	)
	return findAll(ctx, w.tx, query)
}

func (w *Writer) ExistsForRule(ctx context.Context, ruleID uuid.UUID, date time.Time) (bool, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("EXISTS (SELECT 1 FROM entries WHERE rule_id = ? AND date = ?)", ruleID, ledger.DateOf(date))),
	)
	exists, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[bool])
	if err != nil {
		return false, fmt.Errorf("entry exists for rule %s: %w", ruleID, err)
	}
	return exists, nil
}

func (w *Writer) Insert(ctx context.Context, e *ledger.Entry) error {
	query := psql.Insert(
		im.Into(tableName, columns...),
		im.Values(
			psql.Arg(e.ID),
			psql.Arg(e.OwnerID),
			psql.Arg(e.AccountID),
			psql.Arg(e.ToAccountID),
			psql.Arg(e.CategoryID),
			psql.Arg(string(e.Type)),
			psql.Arg(e.Amount),
			psql.Arg(ledger.DateOf(e.Date)),
			psql.Arg(string(e.Status)),
			psql.Arg(completionArg(e)),
			psql.Arg(e.Description),
			psql.Arg(string(e.Frequency)),
			psql.Arg(e.Installments),
			psql.Arg(e.InstallmentNumber),
			psql.Arg(e.RecurrenceID),
			psql.Arg(e.TransferID),
			psql.Arg(e.RuleID),
			psql.Arg(e.CreatedAt),
		),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update rewrites every mutable column. Identity, owner and series links are left alone.
func (w *Writer) Update(ctx context.Context, e *ledger.Entry) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("account_id").ToArg(e.AccountID),
		um.SetCol("to_account_id").ToArg(e.ToAccountID),
		um.SetCol("category_id").ToArg(e.CategoryID),
		um.SetCol("transaction_type").ToArg(string(e.Type)),
		um.SetCol("amount").ToArg(e.Amount),
		um.SetCol("date").ToArg(ledger.DateOf(e.Date)),
		um.SetCol("status").ToArg(string(e.Status)),
		um.SetCol("completion_date").ToArg(completionArg(e)),
		um.SetCol("description").ToArg(e.Description),
		um.Where(col("id").EQ(psql.Arg(e.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("update entry %s: %w", e.ID, err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(col("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}

func (w *Writer) MarkCompleted(ctx context.Context, ids []uuid.UUID, on time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]bob.Expression, len(ids))
	for i, id := range ids {
		args[i] = psql.Arg(id)
	}
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("status").ToArg(string(ledger.StatusCompleted)),
		um.SetCol("completion_date").ToArg(ledger.DateOf(on)),
		um.Where(col("id").In(args...)),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("mark %d entries completed: %w", len(ids), err)
	}
	return nil
}
