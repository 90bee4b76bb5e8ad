package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesarberbelbr/household-finance-manager/internal/config"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/memory"
)

var owner = uuid.Must(uuid.NewV4())

// failAfter inserts an account and then fails, so the insert must be rolled back.
type failAfter struct {
	account *ledger.Account
}

func (f *failAfter) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Accounts.Insert(ctx, f.account); err != nil {
		return err
	}
	return errors.New("boom")
}

func newAccount(name string) *ledger.Account {
	return &ledger.Account{
		ID:             uuid.Must(uuid.NewV4()),
		OwnerID:        owner,
		Name:           name,
		Type:           ledger.AccountTypeChecking,
		InitialBalance: decimal.Zero,
		CreatedAt:      time.Now().UTC(),
	}
}

// slowInsert inserts an account and holds the transaction open until released.
type slowInsert struct {
	account *ledger.Account
	started chan struct{}
	release chan struct{}
}

func (s *slowInsert) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Accounts.Insert(ctx, s.account); err != nil {
		return err
	}
	close(s.started)
	<-s.release
	return nil
}

func startDelegator(t *testing.T, s *storage.Storage) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(s, config.OperatorConfig{Workers: 4, QueueSize: 10})
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s)

	a := newAccount("Checking")
	require.NoError(t, d.Process(context.Background(), &actions.CreateAccount{Account: a}))

	got, err := s.Reader.Accounts.FindByID(context.Background(), owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", got.Name)
}

func TestProcess_RollsBackOnError(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s)

	a := newAccount("Doomed")
	err := d.Process(context.Background(), &failAfter{account: a})
	assert.EqualError(t, err, "boom")

	_, err = s.Reader.Accounts.FindByID(context.Background(), owner, a.ID)
	assert.True(t, ledger.IsNotFound(err))
}

func TestProcess_ConcurrentWritesKeepBalance(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s)
	ctx := context.Background()

	a := newAccount("Shared")
	require.NoError(t, d.Process(ctx, &actions.CreateAccount{Account: a}))

	planner := ledger.NewPlanner(ledger.DayOverflowSkip)
	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- d.Process(ctx, &actions.CreateEntry{Planner: planner, Request: ledger.EntryRequest{
				OwnerID:   owner,
				AccountID: a.ID,
				Type:      ledger.EntryTypeIncome,
				Amount:    decimal.NewFromInt(1),
				Date:      time.Now(),
				Status:    ledger.StatusCompleted,
				Frequency: ledger.FrequencyNone,
			}})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Reader.Accounts.FindByID(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(got.Balance), got.Balance.String())
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(memory.NewStorage(), config.OperatorConfig{Workers: 1, QueueSize: 1})
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), &actions.CreateAccount{Account: newAccount("Late")})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContext(t *testing.T) {
	d := startDelegator(t, memory.NewStorage())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.CreateAccount{Account: newAccount("Never")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_ReportsOutcomeAfterCallerGivesUp(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s)
	ctx, cancel := context.WithCancel(context.Background())

	action := &slowInsert{account: newAccount("Persisted"), started: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- d.Process(ctx, action) }()

	<-action.started
	cancel()
	close(action.release)

	require.NoError(t, <-done)
	got, err := s.Reader.Accounts.FindByID(context.Background(), owner, action.account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Name)
}
