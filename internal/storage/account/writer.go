package account

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

var _ IAccountWriter = (*Writer)(nil)

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

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	query := selectAccounts(
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	return findOne(ctx, w.tx, query, id)
}

func (w *Writer) Insert(ctx context.Context, account *ledger.Account) error {
	query := psql.Insert(
		im.Into(tableName, columns...),
		im.Values(
			psql.Arg(account.ID),
			psql.Arg(account.OwnerID),
			psql.Arg(account.Name),
			psql.Arg(int16(account.Type)),
			psql.Arg(account.InitialBalance),
			psql.Arg(account.Balance),
			psql.Arg(account.CreatedAt),
		),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Update writes the editable fields. Balances are left to UpdateBalance.
func (w *Writer) Update(ctx context.Context, account *ledger.Account) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("name").ToArg(account.Name),
		um.SetCol("type").ToArg(int16(account.Type)),
		um.Where(psql.Quote("id").EQ(psql.Arg(account.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("update account %s: %w", account.ID, err)
	}
	return nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("update balance %s: %w", id, err)
	}
	return nil
}

// Delete removes the account. Entries cascade through the foreign keys.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}
