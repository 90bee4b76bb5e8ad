package ledger

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type RuleFrequency string

const (
	RuleDaily   RuleFrequency = "daily"
	RuleWeekly  RuleFrequency = "weekly"
	RuleMonthly RuleFrequency = "monthly"
)

func (f RuleFrequency) Valid() bool {
	return f == RuleDaily || f == RuleWeekly || f == RuleMonthly
}

// RecurringRule is the older recurrence description evaluated day by day by
// the scheduler. It produces at most one entry per day.
type RecurringRule struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.NullUUID
	Type        EntryType
	Amount      decimal.Decimal
	Description string
	Frequency   RuleFrequency
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}

func (r *RecurringRule) Validate() error {
	if r.AccountID == uuid.Nil {
		return Invalid("account", "is required")
	}
	if !r.Type.Valid() {
		return Invalid("transactionType", "must be income or expense")
	}
	if !r.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if !r.Frequency.Valid() {
		return Invalid("frequency", "must be daily, weekly or monthly")
	}
	if r.StartDate.IsZero() {
		return Invalid("startDate", "is required")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return Invalid("endDate", "must not be before the start date")
	}
	return nil
}

// DueOn reports whether the rule fires on today.
func (r *RecurringRule) DueOn(today time.Time, policy DayOverflowPolicy) bool {
	today = DateOf(today)
	start := DateOf(r.StartDate)
	if today.Before(start) {
		return false
	}
	if r.EndDate != nil && today.After(DateOf(*r.EndDate)) {
		return false
	}

	switch r.Frequency {
	case RuleDaily:
		return true
	case RuleWeekly:
		return today.Weekday() == start.Weekday()
	case RuleMonthly:
		d, ok := InMonth(today.Year(), today.Month(), start.Day(), policy)
		return ok && d.Equal(today)
	}
	return false
}

// EntryFor builds the pending entry the rule creates on today.
func (r *RecurringRule) EntryFor(today time.Time, id uuid.UUID, now time.Time) *Entry {
	return &Entry{
		ID:                id,
		OwnerID:           r.OwnerID,
		AccountID:         r.AccountID,
		CategoryID:        r.CategoryID,
		Type:              r.Type,
		Amount:            r.Amount,
		Date:              DateOf(today),
		Status:            StatusPending,
		Description:       r.Description,
		Frequency:         FrequencyNone,
		Installments:      1,
		InstallmentNumber: 1,
		RuleID:            uuid.NullUUID{UUID: r.ID, Valid: true},
		CreatedAt:         now.UTC(),
	}
}

// ActivationResult summarizes one due-item sweep.
type ActivationResult struct {
	Activated       int
	AccountsTouched []uuid.UUID
	// MissingAccounts were referenced by completed entries but no longer exist.
	MissingAccounts []uuid.UUID
}

func (r ActivationResult) String() string {
	if r.Activated == 0 {
		return "No entries to complete."
	}
	return fmt.Sprintf("Completed %d entries and updated %d accounts.", r.Activated, len(r.AccountsTouched))
}
