package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage/account"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/category"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/entry"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/rule"
)

type Writer struct {
	tx         Tx
	Accounts   account.IAccountWriter
	Categories category.ICategoryWriter
	Entries    entry.IEntryWriter
	Rules      rule.IRuleWriter
}

func NewWriter(
	tx Tx,
	accounts account.IAccountWriter,
	categories category.ICategoryWriter,
	entries entry.IEntryWriter,
	rules rule.IRuleWriter,
) *Writer {
	return &Writer{
		tx:         tx,
		Accounts:   accounts,
		Categories: categories,
		Entries:    entries,
		Rules:      rules,
	}
}

func newBobWriter(tx bob.Tx) *Writer {
	return NewWriter(
		bobTx{tx: tx},
		account.NewWriter(tx),
		category.NewWriter(tx),
		entry.NewWriter(tx),
		rule.NewWriter(tx),
	)
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

type bobTx struct {
	tx bob.Tx
}

func (t bobTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t bobTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
