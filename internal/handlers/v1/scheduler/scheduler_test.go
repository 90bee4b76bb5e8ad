package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/scheduler"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) RunOnce(ctx context.Context, today time.Time) (scheduler.Summary, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(scheduler.Summary), args.Error(1)
}

func (m *mockRunner) Today() time.Time {
	return m.Called().Get(0).(time.Time)
}

func newTestAPI(t *testing.T, r *mockRunner) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewRunHandler(r).Register(api)
	return api
}

func TestHTTP_Run_Today(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	r := new(mockRunner)
	r.On("Today").Return(today)
	r.On("RunOnce", mock.Anything, today).Return(scheduler.Summary{
		RulesCreated: 1,
		Activation: ledger.ActivationResult{
			Activated:       2,
			AccountsTouched: []uuid.UUID{uuid.Must(uuid.NewV4())},
		},
	}, nil)

	resp := newTestAPI(t, r).Post("/v1/scheduler/run")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Completed 2 entries and updated 1 accounts.", body.Message)
	assert.Equal(t, 1, body.RulesCreated)
	assert.Equal(t, 2, body.Activated)
	assert.Equal(t, 1, body.AccountsTouched)
	r.AssertExpectations(t)
}

func TestHTTP_Run_ExplicitDate(t *testing.T) {
	r := new(mockRunner)
	r.On("Today").Return(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	r.On("RunOnce", mock.Anything, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Return(scheduler.Summary{}, nil)

	resp := newTestAPI(t, r).Post("/v1/scheduler/run", RunBody{Date: "2024-02-01"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No entries to complete.", body.Message)
	r.AssertExpectations(t)
}

func TestHTTP_Run_Failure(t *testing.T) {
	r := new(mockRunner)
	r.On("Today").Return(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	r.On("RunOnce", mock.Anything, mock.Anything).Return(scheduler.Summary{}, errors.New("db down"))

	resp := newTestAPI(t, r).Post("/v1/scheduler/run")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
