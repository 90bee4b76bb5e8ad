package actions

import (
	"context"
	"time"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// ProcessRecurringRules creates today's pending entry for every due rule
// that has not produced one yet.
type ProcessRecurringRules struct {
	Planner *ledger.Planner
	Today   time.Time

	Created int
}

func (p *ProcessRecurringRules) Perform(ctx context.Context, writer *storage.Writer) error {
	today := ledger.DateOf(p.Today)
	rules, err := writer.Rules.ListActive(ctx, today)
	if err != nil {
		return err
	}

	created := 0
	for _, r := range rules {
		if !r.DueOn(today, p.Planner.Policy) {
			continue
		}
		exists, err := writer.Entries.ExistsForRule(ctx, r.ID, today)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err = writer.Entries.Insert(ctx, r.EntryFor(today, p.Planner.NewID(), p.Planner.Now())); err != nil {
			return err
		}
		created++
	}
	p.Created = created
	return nil
}
