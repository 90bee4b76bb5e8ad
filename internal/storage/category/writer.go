package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const uniqueViolation = pq.ErrorCode("23505")

var _ ICategoryWriter = (*Writer)(nil)

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

func (w *Writer) Insert(ctx context.Context, category *ledger.Category) error {
	query := psql.Insert(
		im.Into(tableName, columns...),
		im.Values(
			psql.Arg(category.ID),
			psql.Arg(category.OwnerID),
			psql.Arg(category.Name),
			psql.Arg(string(category.Type)),
			psql.Arg(category.CreatedAt),
		),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ledger.Invalid("name", "category %q already exists", category.Name)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Delete relies on entries.category_id being ON DELETE SET NULL.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
