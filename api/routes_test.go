package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesarberbelbr/household-finance-manager/internal/config"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator"
	"github.com/cesarberbelbr/household-finance-manager/internal/scheduler"
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStorage()
	delegator := operator.NewOperatorDelegator(store, config.OperatorConfig{Workers: 2, QueueSize: 10})
	delegator.Start()
	t.Cleanup(delegator.Stop)

	planner := ledger.NewPlanner(ledger.DayOverflowSkip)
	planner.Now = func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC) }

	rest := &Rest{
		Logger:    logging.SetupLogging("error"),
		Service:   service.NewService(store, delegator, planner),
		Scheduler: scheduler.NewScheduler(delegator, planner, time.Hour),
	}
	server := httptest.NewServer(rest.Handler())
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path string, owner uuid.UUID, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Owner-ID", owner.String())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestStatus(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLedgerFlow(t *testing.T) {
	server := newTestServer(t)
	owner := uuid.Must(uuid.NewV4())

	resp := call(t, server, http.MethodPost, "/v1/account", owner, map[string]any{
		"name": "Checking", "type": 0, "initialBalance": "100.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	resp = call(t, server, http.MethodPost, "/v1/entry", owner, map[string]any{
		"accountId": created.ID, "type": "expense", "amount": "30", "date": "2024-01-10", "status": "completed",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, server, http.MethodPost, "/v1/entry", owner, map[string]any{
		"accountId": created.ID, "type": "income", "amount": "10", "date": "2024-01-15",
		"status": "completed", "frequency": "installment", "installments": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var acc struct {
		Balance string `json:"balance"`
	}
	resp = call(t, server, http.MethodGet, "/v1/account/"+created.ID, owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &acc)
	assert.Equal(t, "80", acc.Balance)

	resp = call(t, server, http.MethodPost, "/v1/scheduler/run", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var run struct {
		Message string `json:"message"`
	}
	decode(t, resp, &run)
	assert.Equal(t, "Completed 2 entries and updated 1 accounts.", run.Message)

	resp = call(t, server, http.MethodGet, "/v1/account/"+created.ID, owner, nil)
	decode(t, resp, &acc)
	assert.Equal(t, "100", acc.Balance)
}

func TestOwnerIsolation(t *testing.T) {
	server := newTestServer(t)
	owner := uuid.Must(uuid.NewV4())

	resp := call(t, server, http.MethodPost, "/v1/account", owner, map[string]any{"name": "Mine", "type": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	resp = call(t, server, http.MethodGet, "/v1/account/"+created.ID, uuid.Must(uuid.NewV4()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
