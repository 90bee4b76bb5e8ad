package ledger

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecurringRule_DueOn(t *testing.T) {
	end := date(2024, 6, 30)
	tests := []struct {
		name  string
		freq  RuleFrequency
		start time.Time
		end   *time.Time
		today time.Time
		want  bool
	}{
		{"daily on start", RuleDaily, date(2024, 1, 1), nil, date(2024, 1, 1), true},
		{"daily before start", RuleDaily, date(2024, 1, 2), nil, date(2024, 1, 1), false},
		{"daily after end", RuleDaily, date(2024, 1, 1), &end, date(2024, 7, 1), false},
		{"daily on end", RuleDaily, date(2024, 1, 1), &end, date(2024, 6, 30), true},
		{"weekly same weekday", RuleWeekly, date(2024, 1, 1), nil, date(2024, 1, 15), true},
		{"weekly other weekday", RuleWeekly, date(2024, 1, 1), nil, date(2024, 1, 16), false},
		{"monthly same day", RuleMonthly, date(2024, 1, 20), nil, date(2024, 4, 20), true},
		{"monthly other day", RuleMonthly, date(2024, 1, 20), nil, date(2024, 4, 21), false},
		{"monthly 31st skipped in april", RuleMonthly, date(2024, 1, 31), nil, date(2024, 4, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &RecurringRule{Frequency: tt.freq, StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, r.DueOn(tt.today, DayOverflowSkip))
		})
	}

	clamped := &RecurringRule{Frequency: RuleMonthly, StartDate: date(2024, 1, 31)}
	assert.True(t, clamped.DueOn(date(2024, 4, 30), DayOverflowClamp))
}

func TestRecurringRule_Validate(t *testing.T) {
	r := &RecurringRule{
		AccountID: uuid.Must(uuid.NewV4()),
		Type:      EntryTypeExpense,
		Amount:    decimal.NewFromInt(15),
		Frequency: RuleWeekly,
		StartDate: date(2024, 3, 1),
	}
	assert.NoError(t, r.Validate())

	before := date(2024, 2, 1)
	r.EndDate = &before
	assert.True(t, IsValidation(r.Validate()))

	r.EndDate = nil
	r.Frequency = "yearly"
	assert.True(t, IsValidation(r.Validate()))
}

func TestRecurringRule_EntryFor(t *testing.T) {
	r := &RecurringRule{
		ID:          uuid.Must(uuid.NewV4()),
		AccountID:   uuid.Must(uuid.NewV4()),
		Type:        EntryTypeExpense,
		Amount:      decimal.NewFromInt(15),
		Description: "Gym",
		Frequency:   RuleMonthly,
		StartDate:   date(2024, 3, 1),
	}
	id := uuid.Must(uuid.NewV4())
	e := r.EntryFor(date(2024, 5, 1), id, date(2024, 5, 1))
	assert.Equal(t, id, e.ID)
	assert.Equal(t, r.ID, e.RuleID.UUID)
	assert.Equal(t, StatusPending, e.Status)
	assert.Equal(t, date(2024, 5, 1), e.Date)
	assert.NoError(t, e.Validate())
}

func TestActivationResult_String(t *testing.T) {
	assert.Equal(t, "No entries to complete.", ActivationResult{}.String())
	res := ActivationResult{Activated: 3, AccountsTouched: []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}}
	assert.Equal(t, "Completed 3 entries and updated 2 accounts.", res.String())
}
