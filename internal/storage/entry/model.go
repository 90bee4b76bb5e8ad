package entry

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

const tableName = "entries"

var columns = []string{
	"id", "owner_id", "account_id", "to_account_id", "category_id",
	"transaction_type", "amount", "date", "status", "completion_date", "description",
	"frequency", "installments", "installment_number",
	"recurrence_id", "transfer_id", "rule_id", "created_at",
}

// EntryFilter specifies filters for listing entries.
type EntryFilter struct {
	OwnerID         uuid.UUID
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IEntryReader is the owner-scoped read side of the entries table.
type IEntryReader interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Entry, error)
	// List returns up to Limit+1 rows so callers can tell whether another page exists.
	List(ctx context.Context, filter *EntryFilter) ([]*ledger.Entry, error)
	// ListByPeriod returns entries dated in [from, to).
	ListByPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*ledger.Entry, error)
	// ListFixedMonthlyTemplates returns templates whose first occurrence is before the given date.
	ListFixedMonthlyTemplates(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*ledger.Entry, error)
}

// IEntryWriter is only available inside a write transaction. Lookups here are
// not owner scoped; they follow ids already resolved through the reader.
type IEntryWriter interface {
	IEntryReader
	// FindOccurrence returns the row of a series holding the given installment
	// number in one account.
	FindOccurrence(ctx context.Context, recurrenceID, accountID uuid.UUID, installmentNumber int) (*ledger.Entry, error)
	// FindTransferCounterpart returns the opposite leg of the same transfer
	// occurrence. Dates are not part of the key since legs can be moved.
	FindTransferCounterpart(ctx context.Context, leg *ledger.Entry) (*ledger.Entry, error)
	CompletedTotals(ctx context.Context, accountID uuid.UUID) (ledger.Totals, error)
	// ListDue returns every pending entry dated on or before today, across owners.
	ListDue(ctx context.Context, today time.Time) ([]*ledger.Entry, error)
	ExistsForRule(ctx context.Context, ruleID uuid.UUID, date time.Time) (bool, error)
	Insert(ctx context.Context, entry *ledger.Entry) error
	Update(ctx context.Context, entry *ledger.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, ids []uuid.UUID, on time.Time) error
}

type row struct {
	ID                uuid.UUID       `db:"id"`
	OwnerID           uuid.UUID       `db:"owner_id"`
	AccountID         uuid.UUID       `db:"account_id"`
	ToAccountID       uuid.NullUUID   `db:"to_account_id"`
	CategoryID        uuid.NullUUID   `db:"category_id"`
	Type              string          `db:"transaction_type"`
	Amount            decimal.Decimal `db:"amount"`
	Date              time.Time       `db:"date"`
	Status            string          `db:"status"`
	CompletionDate    sql.NullTime    `db:"completion_date"`
	Description       string          `db:"description"`
	Frequency         string          `db:"frequency"`
	Installments      int             `db:"installments"`
	InstallmentNumber int             `db:"installment_number"`
	RecurrenceID      uuid.NullUUID   `db:"recurrence_id"`
	TransferID        uuid.NullUUID   `db:"transfer_id"`
	RuleID            uuid.NullUUID   `db:"rule_id"`
	CreatedAt         time.Time       `db:"created_at"`
}

func rowToEntry(r row) *ledger.Entry {
	e := &ledger.Entry{
		ID:                r.ID,
		OwnerID:           r.OwnerID,
		AccountID:         r.AccountID,
		ToAccountID:       r.ToAccountID,
		CategoryID:        r.CategoryID,
		Type:              ledger.EntryType(r.Type),
		Amount:            r.Amount,
		Date:              ledger.DateOf(r.Date),
		Status:            ledger.Status(r.Status),
		Description:       r.Description,
		Frequency:         ledger.Frequency(r.Frequency),
		Installments:      r.Installments,
		InstallmentNumber: r.InstallmentNumber,
		RecurrenceID:      r.RecurrenceID,
		TransferID:        r.TransferID,
		RuleID:            r.RuleID,
		CreatedAt:         r.CreatedAt,
	}
	if r.CompletionDate.Valid {
		d := ledger.DateOf(r.CompletionDate.Time)
		e.CompletionDate = &d
	}
	return e
}

func completionArg(e *ledger.Entry) sql.NullTime {
	if e.CompletionDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *e.CompletionDate, Valid: true}
}
