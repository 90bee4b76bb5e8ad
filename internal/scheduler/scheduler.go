// Package scheduler runs the periodic sweep over legacy recurring rules and
// due entries.
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
)

type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Summary is the outcome of one run.
type Summary struct {
	RulesCreated int
	Activation   ledger.ActivationResult
}

func (s Summary) String() string {
	return s.Activation.String()
}

type Scheduler struct {
	proc     processor
	planner  *ledger.Planner
	interval time.Duration
}

func NewScheduler(proc processor, planner *ledger.Planner, interval time.Duration) *Scheduler {
	return &Scheduler{proc: proc, planner: planner, interval: interval}
}

// RunOnce creates today's rule entries and then completes everything due.
// Each step commits on its own, and both are safe to repeat.
func (s *Scheduler) RunOnce(ctx context.Context, today time.Time) (Summary, error) {
	today = ledger.DateOf(today)

	rules := &actions.ProcessRecurringRules{Planner: s.planner, Today: today}
	if err := s.proc.Process(ctx, rules); err != nil {
		return Summary{}, err
	}

	activate := &actions.ActivateDueEntries{Today: today}
	if err := s.proc.Process(ctx, activate); err != nil {
		return Summary{RulesCreated: rules.Created}, err
	}

	summary := Summary{RulesCreated: rules.Created, Activation: activate.Result}
	logrus.WithFields(logrus.Fields{
		"date":            today.Format(time.DateOnly),
		"rulesCreated":    summary.RulesCreated,
		"activated":       summary.Activation.Activated,
		"accountsTouched": len(summary.Activation.AccountsTouched),
	}).Info(summary.String())
	return summary, nil
}

// Today is the current date in the scheduler's timezone.
func (s *Scheduler) Today() time.Time {
	return s.planner.Today()
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx, s.Today()); err != nil && ctx.Err() == nil {
			logrus.WithError(err).Error("Scheduler.Run.Error")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
