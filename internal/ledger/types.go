package ledger

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCreditCard
	AccountTypeInvestment
	AccountTypeOther
)

func (t AccountType) Valid() bool {
	return t >= AccountTypeChecking && t <= AccountTypeOther
}

func (t AccountType) String() string {
	switch t {
	case AccountTypeChecking:
		return "checking"
	case AccountTypeSavings:
		return "savings"
	case AccountTypeCreditCard:
		return "credit_card"
	case AccountTypeInvestment:
		return "investment"
	case AccountTypeOther:
		return "other"
	}
	return "unknown"
}

// EntryType is the direction of an entry. A transfer is one expense leg plus one income leg.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// Opposite returns the type of the counterpart leg of a transfer.
func (t EntryType) Opposite() EntryType {
	if t == EntryTypeIncome {
		return EntryTypeExpense
	}
	return EntryTypeIncome
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Frequency string

const (
	FrequencyNone         Frequency = "none"
	FrequencyInstallment  Frequency = "installment"
	FrequencyFixedMonthly Frequency = "fixed_monthly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyNone || f == FrequencyInstallment || f == FrequencyFixedMonthly
}

// UnboundedInstallments is stored in Entry.Installments for fixed-monthly series.
const UnboundedInstallments = 0

// Account is a user-owned financial account. Balance is derived and only
// written by the recalculation path.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
}

// Category labels entries. (OwnerID, Name) is unique.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Type      EntryType
	CreatedAt time.Time
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return Invalid("name", "is required")
	}
	if !a.Type.Valid() {
		return Invalid("type", "unknown account type %d", a.Type)
	}
	return nil
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "is required")
	}
	if !c.Type.Valid() {
		return Invalid("type", "must be income or expense")
	}
	return nil
}
