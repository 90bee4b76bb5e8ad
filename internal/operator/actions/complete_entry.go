package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// CompleteEntry marks an entry completed today. For a fixed-monthly template
// the occurrence of the requested period is materialized first and that row
// is completed instead. Transfer legs complete together with their counterpart.
type CompleteEntry struct {
	Planner *ledger.Planner
	OwnerID uuid.UUID
	ID      uuid.UUID
	// OccurrenceDate selects the period of a fixed-monthly series. Defaults to today.
	OccurrenceDate *time.Time

	// CompletedID is the row that ended up completed.
	CompletedID uuid.UUID
}

// occurrenceRow is an entry to complete and whether it still needs inserting.
type occurrenceRow struct {
	entry *ledger.Entry
	isNew bool
}

func (c *CompleteEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	e, err := writer.Entries.FindByID(ctx, c.OwnerID, c.ID)
	if err != nil {
		return err
	}

	// the locks come before any occurrence lookup so that concurrent
	// completions of one period see each other's rows
	accounts := []uuid.UUID{e.AccountID}
	if e.Kind() == ledger.KindTransferLeg && e.ToAccountID.Valid {
		accounts = append(accounts, e.ToAccountID.UUID)
	}
	if _, err = lockOwned(ctx, writer, c.OwnerID, accounts...); err != nil {
		return err
	}

	var rows []occurrenceRow
	if e.IsFixedMonthlyTemplate() {
		rows, err = c.resolveTemplate(ctx, writer, e)
	} else {
		rows, err = c.resolvePlain(ctx, writer, e)
	}
	if err != nil {
		return err
	}

	today := c.Planner.Today()
	var pending []uuid.UUID
	for _, r := range rows {
		if r.entry.IsCompleted() {
			continue
		}
		if !r.isNew {
			pending = append(pending, r.entry.ID)
			continue
		}
		r.entry.Complete(today)
		if err = writer.Entries.Insert(ctx, r.entry); err != nil {
			return err
		}
	}
	if len(pending) > 0 {
		if err = writer.Entries.MarkCompleted(ctx, pending, today); err != nil {
			return err
		}
	}

	touched := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		touched = append(touched, r.entry.AccountID)
	}
	if _, err = recalculate(ctx, writer, touched...); err != nil {
		return err
	}
	c.CompletedID = rows[0].entry.ID
	return nil
}

func (c *CompleteEntry) resolvePlain(ctx context.Context, writer *storage.Writer, e *ledger.Entry) ([]occurrenceRow, error) {
	rows := []occurrenceRow{{entry: e}}
	if e.Kind() != ledger.KindTransferLeg {
		return rows, nil
	}
	counterpart, err := writer.Entries.FindTransferCounterpart(ctx, e)
	if ledger.IsNotFound(err) {
		return rows, nil
	}
	if err != nil {
		return nil, err
	}
	return append(rows, occurrenceRow{entry: counterpart}), nil
}

func (c *CompleteEntry) resolveTemplate(ctx context.Context, writer *storage.Writer, tmpl *ledger.Entry) ([]occurrenceRow, error) {
	period := c.Planner.Today()
	if c.OccurrenceDate != nil {
		period = ledger.DateOf(*c.OccurrenceDate)
	}
	on, ok := ledger.OccurrenceIn(tmpl, period.Year(), period.Month(), c.Planner.Policy)
	if !ok {
		return nil, ledger.Invalid("date", "the series has no occurrence in %s", period.Format("2006-01"))
	}

	first, err := c.occurrence(ctx, writer, tmpl, on)
	if err != nil {
		return nil, err
	}
	rows := []occurrenceRow{first}
	if tmpl.Kind() != ledger.KindTransferLeg {
		return rows, nil
	}

	counterpartTmpl, err := writer.Entries.FindTransferCounterpart(ctx, tmpl)
	if ledger.IsNotFound(err) {
		return rows, nil
	}
	if err != nil {
		return nil, err
	}
	second, err := c.occurrence(ctx, writer, counterpartTmpl, on)
	if err != nil {
		return nil, err
	}
	return append(rows, second), nil
}

// occurrence returns the row standing for tmpl's occurrence on the given day:
// the template itself in its first month, an already materialized row, or a
// new row to insert.
func (c *CompleteEntry) occurrence(ctx context.Context, writer *storage.Writer, tmpl *ledger.Entry, on time.Time) (occurrenceRow, error) {
	if ledger.SameMonth(tmpl.Date, on) {
		return occurrenceRow{entry: tmpl}, nil
	}

	materialized := c.Planner.Materialize(tmpl, on)
	existing, err := writer.Entries.FindOccurrence(ctx, tmpl.RecurrenceID.UUID, tmpl.AccountID, materialized.InstallmentNumber)
	if err == nil {
		return occurrenceRow{entry: existing}, nil
	}
	if !ledger.IsNotFound(err) {
		return occurrenceRow{}, err
	}
	return occurrenceRow{entry: materialized, isNew: true}, nil
}
