package ledger

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// EntryRequest is a user-submitted template: one entry, an installment
// series or a fixed-monthly series.
type EntryRequest struct {
	OwnerID      uuid.UUID
	AccountID    uuid.UUID
	CategoryID   uuid.NullUUID
	Type         EntryType
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Status       Status
	Frequency    Frequency
	Installments int
}

func (r *EntryRequest) Validate() error {
	if r.AccountID == uuid.Nil {
		return Invalid("account", "is required")
	}
	if !r.Type.Valid() {
		return Invalid("transactionType", "must be income or expense")
	}
	if !r.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if r.Date.IsZero() {
		return Invalid("date", "is required")
	}
	if !r.Status.Valid() {
		return Invalid("status", "must be pending or completed")
	}
	return validateRecurrence(r.Frequency, r.Installments)
}

func validateRecurrence(f Frequency, installments int) error {
	if !f.Valid() {
		return Invalid("frequency", "must be none, installment or fixed_monthly")
	}
	if f == FrequencyInstallment && installments < 1 {
		return Invalid("installments", "must be at least 1")
	}
	return nil
}

// occurrence is one dated slot of a series; ordinal is 0-based.
type occurrence struct {
	ordinal int
	date    time.Time
}

func occurrences(start time.Time, f Frequency, installments int, policy DayOverflowPolicy) []occurrence {
	start = DateOf(start)
	if f != FrequencyInstallment {
		return []occurrence{{ordinal: 0, date: start}}
	}
	out := make([]occurrence, 0, installments)
	for i := 0; i < installments; i++ {
		d, ok := AddMonths(start, i, policy)
		if !ok {
			continue
		}
		out = append(out, occurrence{ordinal: i, date: d})
	}
	return out
}

func seriesShape(f Frequency, installments int) (total int) {
	switch f {
	case FrequencyInstallment:
		return installments
	case FrequencyFixedMonthly:
		return UnboundedInstallments
	}
	return 1
}

func installmentSuffix(description string, ordinal, total int) string {
	suffix := fmt.Sprintf("(%d/%d)", ordinal+1, total)
	if description == "" {
		return suffix
	}
	return description + " " + suffix
}

// Planner turns requests into concrete entries. It never touches storage.
type Planner struct {
	Policy DayOverflowPolicy
	Now    func() time.Time
	NewID  func() uuid.UUID
}

func NewPlanner(policy DayOverflowPolicy) *Planner {
	return &Planner{
		Policy: policy,
		Now:    time.Now,
		NewID:  func() uuid.UUID { return uuid.Must(uuid.NewV4()) },
	}
}

// Today is the planner's current calendar date.
func (p *Planner) Today() time.Time {
	return DateOf(p.Now())
}

// PlanEntries expands a request into the rows to persist. Only the first
// occurrence takes the requested status; the rest start pending.
func (p *Planner) PlanEntries(req EntryRequest) ([]*Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	total := seriesShape(req.Frequency, req.Installments)
	var recurrenceID uuid.NullUUID
	if req.Frequency != FrequencyNone {
		recurrenceID = uuid.NullUUID{UUID: p.NewID(), Valid: true}
	}

	now := p.Now().UTC()
	var out []*Entry
	for _, occ := range occurrences(req.Date, req.Frequency, req.Installments, p.Policy) {
		description := req.Description
		if req.Frequency == FrequencyInstallment {
			description = installmentSuffix(req.Description, occ.ordinal, total)
		}
		e := &Entry{
			ID:                p.NewID(),
			OwnerID:           req.OwnerID,
			AccountID:         req.AccountID,
			CategoryID:        req.CategoryID,
			Type:              req.Type,
			Amount:            req.Amount,
			Date:              occ.date,
			Status:            StatusPending,
			Description:       description,
			Frequency:         req.Frequency,
			Installments:      total,
			InstallmentNumber: occ.ordinal + 1,
			RecurrenceID:      recurrenceID,
			CreatedAt:         now,
		}
		if occ.ordinal == 0 && req.Status == StatusCompleted {
			e.Complete(p.Today())
		}
		out = append(out, e)
	}
	return out, nil
}

// Projection is a computed, never persisted occurrence of a fixed-monthly
// template. TemplateID aliases the template so actions route back to it.
type Projection struct {
	TemplateID   uuid.UUID
	OwnerID      uuid.UUID
	AccountID    uuid.UUID
	ToAccountID  uuid.NullUUID
	CategoryID   uuid.NullUUID
	Type         EntryType
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Frequency    Frequency
	RecurrenceID uuid.NullUUID
	TransferID   uuid.NullUUID
}

// Status of a projection is always pending.
func (Projection) Status() Status { return StatusPending }

// CompletionDate of a projection is always nil.
func (Projection) CompletionDate() *time.Time { return nil }

// OccurrenceIn computes the template's occurrence date in (year, month).
// ok is false before the first occurrence or when the day does not exist.
func OccurrenceIn(tmpl *Entry, year int, month time.Month, policy DayOverflowPolicy) (time.Time, bool) {
	d, ok := InMonth(year, month, tmpl.Date.Day(), policy)
	if !ok || d.Before(DateOf(tmpl.Date)) {
		return time.Time{}, false
	}
	return d, true
}

// ProjectFixedMonthly builds the virtual occurrence of tmpl for (year, month).
func ProjectFixedMonthly(tmpl *Entry, year int, month time.Month, policy DayOverflowPolicy) (Projection, bool) {
	if !tmpl.IsFixedMonthlyTemplate() {
		return Projection{}, false
	}
	d, ok := OccurrenceIn(tmpl, year, month, policy)
	if !ok {
		return Projection{}, false
	}
	return Projection{
		TemplateID:   tmpl.ID,
		OwnerID:      tmpl.OwnerID,
		AccountID:    tmpl.AccountID,
		ToAccountID:  tmpl.ToAccountID,
		CategoryID:   tmpl.CategoryID,
		Type:         tmpl.Type,
		Amount:       tmpl.Amount,
		Date:         d,
		Description:  tmpl.Description,
		Frequency:    tmpl.Frequency,
		RecurrenceID: tmpl.RecurrenceID,
		TransferID:   tmpl.TransferID,
	}, true
}

// Materialize builds the concrete pending row for a fixed-monthly occurrence
// dated on.
func (p *Planner) Materialize(tmpl *Entry, on time.Time) *Entry {
	return &Entry{
		ID:                p.NewID(),
		OwnerID:           tmpl.OwnerID,
		AccountID:         tmpl.AccountID,
		ToAccountID:       tmpl.ToAccountID,
		CategoryID:        tmpl.CategoryID,
		Type:              tmpl.Type,
		Amount:            tmpl.Amount,
		Date:              DateOf(on),
		Status:            StatusPending,
		Description:       tmpl.Description,
		Frequency:         FrequencyFixedMonthly,
		Installments:      UnboundedInstallments,
		InstallmentNumber: MonthsBetween(tmpl.Date, on) + 1,
		RecurrenceID:      tmpl.RecurrenceID,
		TransferID:        tmpl.TransferID,
		CreatedAt:         p.Now().UTC(),
	}
}

// DashboardLine is either a persisted entry or a projection.
type DashboardLine struct {
	Entry      *Entry
	Projection *Projection
}

func (l DashboardLine) IsProjection() bool {
	return l.Projection != nil
}

func (l DashboardLine) ID() uuid.UUID {
	if l.Projection != nil {
		return l.Projection.TemplateID
	}
	return l.Entry.ID
}

func (l DashboardLine) Date() time.Time {
	if l.Projection != nil {
		return l.Projection.Date
	}
	return l.Entry.Date
}

type seriesKey struct {
	recurrenceID uuid.UUID
	accountID    uuid.UUID
}

// BuildDashboard merges the month's persisted entries with projections of
// the fixed-monthly templates. A template is not projected into a month that
// already holds a persisted occurrence of it.
func BuildDashboard(year int, month time.Month, entries []*Entry, templates []*Entry, policy DayOverflowPolicy) []DashboardLine {
	lines := make([]DashboardLine, 0, len(entries)+len(templates))
	persisted := make(map[seriesKey]bool)
	for _, e := range entries {
		lines = append(lines, DashboardLine{Entry: e})
		if e.Frequency == FrequencyFixedMonthly && e.RecurrenceID.Valid {
			persisted[seriesKey{e.RecurrenceID.UUID, e.AccountID}] = true
		}
	}

	for _, tmpl := range templates {
		if persisted[seriesKey{tmpl.RecurrenceID.UUID, tmpl.AccountID}] {
			continue
		}
		proj, ok := ProjectFixedMonthly(tmpl, year, month, policy)
		if !ok {
			continue
		}
		lines = append(lines, DashboardLine{Projection: &proj})
	}

	SortLines(lines)
	return lines
}

// SortLines orders by date ascending, then id.
func SortLines(lines []DashboardLine) {
	slices.SortStableFunc(lines, func(a, b DashboardLine) int {
		if c := a.Date().Compare(b.Date()); c != 0 {
			return c
		}
		aID, bID := a.ID(), b.ID()
		return bytes.Compare(aID[:], bID[:])
	})
}
