package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const tableName = "categories"

var columns = []string{"id", "owner_id", "name", "type", "created_at"}

type ICategoryReader interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Category, error)
	// FindByName returns a NotFoundError when the owner has no such category.
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*ledger.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Category, error)
}

type ICategoryWriter interface {
	ICategoryReader
	Insert(ctx context.Context, category *ledger.Category) error
	// Delete removes the category and clears it from every entry that used it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type row struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func rowToCategory(r row) *ledger.Category {
	return &ledger.Category{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Type:      ledger.EntryType(r.Type),
		CreatedAt: r.CreatedAt,
	}
}
