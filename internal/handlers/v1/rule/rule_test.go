package rule

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
)

type mockRuleService struct {
	mock.Mock
}

func (m *mockRuleService) CreateRule(ctx context.Context, ownerID uuid.UUID, create service.RuleCreate) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockRuleService) ListRules(ctx context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.RecurringRule), args.Error(1)
}

func (m *mockRuleService) DeleteRule(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

var owner = uuid.Must(uuid.NewV4())

func newTestAPI(t *testing.T, svc *mockRuleService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestParseCreateRuleInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	create, err := parseCreateRuleInput(&CreateRuleInput{Body: CreateRuleBody{
		AccountID: accountID.String(),
		Type:      "expense",
		Amount:    "15.00",
		Frequency: "monthly",
		StartDate: "2024-01-15",
		EndDate:   "2024-12-15",
	}})
	require.NoError(t, err)
	assert.Equal(t, accountID, create.AccountID)
	assert.False(t, create.CategoryID.Valid)
	assert.Equal(t, ledger.RuleMonthly, create.Frequency)
	assert.True(t, create.Amount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), create.StartDate)
	require.NotNil(t, create.EndDate)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), *create.EndDate)
}

func TestParseCreateRuleInput_BadDate(t *testing.T) {
	_, err := parseCreateRuleInput(&CreateRuleInput{Body: CreateRuleBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "1",
		StartDate: "15/01/2024",
	}})
	assert.Error(t, err)
}

func TestHTTP_CreateRule(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockRuleService)
	svc.On("CreateRule", mock.Anything, owner, mock.MatchedBy(func(c service.RuleCreate) bool {
		return c.AccountID == accountID && c.Frequency == ledger.RuleWeekly && c.EndDate == nil
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/rule", "X-Owner-ID: "+owner.String(), CreateRuleBody{
		AccountID: accountID.String(),
		Type:      "income",
		Amount:    "10",
		Frequency: "weekly",
		StartDate: "2024-07-01",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateRuleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateRule_ValidationError(t *testing.T) {
	svc := new(mockRuleService)
	svc.On("CreateRule", mock.Anything, owner, mock.Anything).
		Return(uuid.Nil, ledger.Invalid("endDate", "must not be before the start date"))

	resp := newTestAPI(t, svc).Post("/v1/rule", "X-Owner-ID: "+owner.String(), CreateRuleBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Type:      "income",
		Amount:    "10",
		Frequency: "daily",
		StartDate: "2024-07-01",
		EndDate:   "2024-06-01",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListRules(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	r := &ledger.RecurringRule{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   owner,
		AccountID: uuid.Must(uuid.NewV4()),
		Type:      ledger.EntryTypeExpense,
		Amount:    decimal.RequireFromString("9.99"),
		Frequency: ledger.RuleMonthly,
		StartDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}
	svc := new(mockRuleService)
	svc.On("ListRules", mock.Anything, owner).Return([]*ledger.RecurringRule{r}, nil)

	resp := newTestAPI(t, svc).Get("/v1/rule", "X-Owner-ID: "+owner.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListRulesBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Rules, 1)
	assert.Equal(t, "2024-01-05", body.Rules[0].StartDate)
	assert.Equal(t, "2024-12-31", body.Rules[0].EndDate)
	assert.Equal(t, "9.99", body.Rules[0].Amount)
	assert.Empty(t, body.Rules[0].CategoryID)
}

func TestHTTP_DeleteRule(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockRuleService)
	svc.On("DeleteRule", mock.Anything, owner, id).Return(nil)

	resp := newTestAPI(t, svc).Delete("/v1/rule/"+id.String(), "X-Owner-ID: "+owner.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}
