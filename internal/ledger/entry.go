package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Kind is the closed set of entry variants. It is derived from the
// recurrence and transfer fields and checked by Validate.
type Kind int

const (
	KindSingle Kind = iota
	KindInstallment
	KindFixedMonthly
	KindTransferLeg
)

// Entry is one persisted ledger row.
type Entry struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	AccountID uuid.UUID
	// ToAccountID is the counterpart account of a transfer leg.
	ToAccountID    uuid.NullUUID
	CategoryID     uuid.NullUUID
	Type           EntryType
	Amount         decimal.Decimal
	Date           time.Time
	Status         Status
	CompletionDate *time.Time
	Description    string

	Frequency         Frequency
	Installments      int
	InstallmentNumber int
	RecurrenceID      uuid.NullUUID
	TransferID        uuid.NullUUID
	// RuleID links entries created by a legacy recurring rule.
	RuleID uuid.NullUUID

	CreatedAt time.Time
}

func (e *Entry) Kind() Kind {
	switch {
	case e.TransferID.Valid:
		return KindTransferLeg
	case e.Frequency == FrequencyInstallment:
		return KindInstallment
	case e.Frequency == FrequencyFixedMonthly:
		return KindFixedMonthly
	}
	return KindSingle
}

// IsFixedMonthlyTemplate reports whether the entry is the persisted first
// occurrence of an unbounded monthly series.
func (e *Entry) IsFixedMonthlyTemplate() bool {
	return e.Frequency == FrequencyFixedMonthly && e.InstallmentNumber <= 1
}

func (e *Entry) IsCompleted() bool {
	return e.CompletionDate != nil
}

// Complete marks the entry completed on the given day.
func (e *Entry) Complete(on time.Time) {
	d := DateOf(on)
	e.Status = StatusCompleted
	e.CompletionDate = &d
}

// Validate enforces the field-presence rules of each variant.
func (e *Entry) Validate() error {
	if e.AccountID == uuid.Nil {
		return Invalid("account", "is required")
	}
	if !e.Type.Valid() {
		return Invalid("transactionType", "must be income or expense")
	}
	if !e.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if e.Date.IsZero() {
		return Invalid("date", "is required")
	}
	if !e.Status.Valid() {
		return Invalid("status", "must be pending or completed")
	}
	if (e.Status == StatusCompleted) != e.IsCompleted() {
		return Invalid("status", "completion date must be set exactly when completed")
	}
	if !e.Frequency.Valid() {
		return Invalid("frequency", "must be none, installment or fixed_monthly")
	}

	switch e.Frequency {
	case FrequencyNone:
		if e.Installments != 1 || e.InstallmentNumber != 1 {
			return Invalid("installments", "single entries have exactly one installment")
		}
	case FrequencyInstallment:
		if e.Installments < 1 {
			return Invalid("installments", "must be at least 1")
		}
		if e.InstallmentNumber < 1 || e.InstallmentNumber > e.Installments {
			return Invalid("installmentNumber", "must be between 1 and %d", e.Installments)
		}
		if !e.RecurrenceID.Valid {
			return Invalid("recurrence", "installment entries share a recurrence id")
		}
	case FrequencyFixedMonthly:
		if e.Installments != UnboundedInstallments {
			return Invalid("installments", "fixed monthly series are unbounded")
		}
		if e.InstallmentNumber < 1 {
			return Invalid("installmentNumber", "must be at least 1")
		}
		if !e.RecurrenceID.Valid {
			return Invalid("recurrence", "fixed monthly entries share a recurrence id")
		}
	}

	// a transfer leg loses its counterpart account when that account is deleted
	if e.TransferID.Valid {
		if e.ToAccountID.Valid && e.ToAccountID.UUID == e.AccountID {
			return Invalid("toAccount", "accounts must differ")
		}
	} else if e.ToAccountID.Valid {
		return Invalid("toAccount", "only transfer legs have a counterpart account")
	}
	return nil
}
