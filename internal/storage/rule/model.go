package rule

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const tableName = "recurring_rules"

var columns = []string{
	"id", "owner_id", "account_id", "category_id", "transaction_type", "amount",
	"description", "frequency", "start_date", "end_date", "created_at",
}

type IRuleReader interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.RecurringRule, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error)
	// ListActive returns rules of every owner whose date range contains today.
	ListActive(ctx context.Context, today time.Time) ([]*ledger.RecurringRule, error)
}

type IRuleWriter interface {
	IRuleReader
	Insert(ctx context.Context, rule *ledger.RecurringRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type row struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	CategoryID  uuid.NullUUID   `db:"category_id"`
	Type        string          `db:"transaction_type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Frequency   string          `db:"frequency"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     sql.NullTime    `db:"end_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func rowToRule(r row) *ledger.RecurringRule {
	rule := &ledger.RecurringRule{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Type:        ledger.EntryType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Frequency:   ledger.RuleFrequency(r.Frequency),
		StartDate:   ledger.DateOf(r.StartDate),
		CreatedAt:   r.CreatedAt,
	}
	if r.EndDate.Valid {
		end := ledger.DateOf(r.EndDate.Time)
		rule.EndDate = &end
	}
	return rule
}
