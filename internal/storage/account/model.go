package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const tableName = "accounts"

var columns = []string{"id", "owner_id", "name", "type", "initial_balance", "balance", "created_at"}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	OwnerID uuid.UUID
	Limit   int
	Offset  int
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountListResult contains a page of accounts and an optional next cursor.
type AccountListResult struct {
	Accounts   []*ledger.Account
	NextCursor *AccountCursor
}

// IAccountReader is the owner-scoped read side of the accounts table.
type IAccountReader interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error)
	List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error)
}

// IAccountWriter is only available inside a write transaction.
type IAccountWriter interface {
	IAccountReader
	// FindByIDForUpdate locks the row until the transaction ends. It is not
	// owner scoped; callers resolve ids through owner-scoped reads first.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Account, error)
	Insert(ctx context.Context, account *ledger.Account) error
	Update(ctx context.Context, account *ledger.Account) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type row struct {
	ID             uuid.UUID       `db:"id"`
	OwnerID        uuid.UUID       `db:"owner_id"`
	Name           string          `db:"name"`
	Type           int16           `db:"type"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Balance        decimal.Decimal `db:"balance"`
	CreatedAt      time.Time       `db:"created_at"`
}

func rowToAccount(r row) *ledger.Account {
	return &ledger.Account{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Name:           r.Name,
		Type:           ledger.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
		Balance:        r.Balance,
		CreatedAt:      r.CreatedAt,
	}
}
