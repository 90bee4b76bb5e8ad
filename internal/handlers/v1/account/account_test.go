package account

import (
	"context"
	"encoding/json"
	"errors"
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

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, create service.AccountCreate) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *service.AccountCursor) ([]*ledger.Account, *service.AccountCursor, error) {
	args := m.Called(ctx, ownerID, cursor)
	var next *service.AccountCursor
	if c := args.Get(1); c != nil {
		next = c.(*service.AccountCursor)
	}
	var accounts []*ledger.Account
	if a := args.Get(0); a != nil {
		accounts = a.([]*ledger.Account)
	}
	return accounts, next, args.Error(2)
}

func (m *mockAccountService) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *mockAccountService) RenameAccount(ctx context.Context, ownerID, id uuid.UUID, name string, accountType ledger.AccountType) (*ledger.Account, error) {
	args := m.Called(ctx, ownerID, id, name, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockAccountService) Recalculate(ctx context.Context, ownerID, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var owner = uuid.Must(uuid.NewV4())

func ownerHeader() string {
	return "X-Owner-ID: " + owner.String()
}

func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	NewManageAccountHandler(svc).Register(api)
	return api
}

func sampleAccount() *ledger.Account {
	return &ledger.Account{
		ID:             uuid.Must(uuid.NewV4()),
		OwnerID:        owner,
		Name:           "Checking",
		Type:           ledger.AccountTypeSavings,
		InitialBalance: decimal.RequireFromString("100"),
		Balance:        decimal.RequireFromString("70.5"),
		CreatedAt:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestParseCreateAccountInput_DefaultsInitialBalance(t *testing.T) {
	create, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{Name: "Wallet", Type: 4}})
	require.NoError(t, err)
	assert.Equal(t, "Wallet", create.Name)
	assert.Equal(t, ledger.AccountTypeOther, create.Type)
	assert.True(t, create.InitialBalance.IsZero())
}

func TestParseCreateAccountInput_InvalidBalance(t *testing.T) {
	_, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{Name: "Wallet", InitialBalance: "lots"}})
	assert.Error(t, err)
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, owner, mock.MatchedBy(func(c service.AccountCreate) bool {
		return c.Name == "Checking" && c.Type == ledger.AccountTypeChecking &&
			c.InitialBalance.Equal(decimal.RequireFromString("250.75"))
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/account", ownerHeader(), CreateAccountBody{
		Name:           "Checking",
		Type:           0,
		InitialBalance: "250.75",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_MissingOwner(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", CreateAccountBody{Name: "Checking"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateAccount_TypeOutOfRange(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", ownerHeader(), CreateAccountBody{Name: "Checking", Type: 9})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateAccount_ValidationErrorIsBadRequest(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, owner, mock.Anything).
		Return(uuid.Nil, ledger.Invalid("name", "must not be blank"))

	resp := newTestAPI(t, svc).Post("/v1/account", ownerHeader(), CreateAccountBody{Name: " "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListAccounts_Pagination(t *testing.T) {
	a := sampleAccount()
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, owner, (*service.AccountCursor)(nil)).
		Return([]*ledger.Account{a}, &service.AccountCursor{Position: 1, Limit: 1}, nil)

	resp := newTestAPI(t, svc).Post("/v1/account/list", ownerHeader(), ListAccountsBody{})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, "70.5", body.Accounts[0].Balance)
	assert.Equal(t, "100", body.Accounts[0].InitialBalance)
	assert.Equal(t, 1, body.Accounts[0].Type)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 1, body.NextCursor.Position)
	svc.AssertExpectations(t)
}

func TestHTTP_ListAccounts_ForwardsCursor(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, owner, &service.AccountCursor{Position: 20, Limit: 10}).
		Return([]*ledger.Account{}, nil, nil)

	resp := newTestAPI(t, svc).Post("/v1/account/list", ownerHeader(), ListAccountsBody{
		Cursor: &ListAccountsCursor{Position: 20, Limit: 10},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Accounts)
	assert.Nil(t, body.NextCursor)
}

func TestHTTP_ListAccounts_ServiceError(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, owner, mock.Anything).Return(nil, nil, errors.New("db down"))

	resp := newTestAPI(t, svc).Post("/v1/account/list", ownerHeader(), ListAccountsBody{})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_GetAccount(t *testing.T) {
	a := sampleAccount()
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, owner, a.ID).Return(a, nil)

	resp := newTestAPI(t, svc).Get("/v1/account/"+a.ID.String(), ownerHeader())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, a.ID.String(), body.ID)
	assert.Equal(t, "2024-01-01T09:00:00Z", body.CreatedAt)
}

func TestHTTP_GetAccount_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, owner, id).Return(nil, ledger.NotFound("account", id))

	resp := newTestAPI(t, svc).Get("/v1/account/"+id.String(), ownerHeader())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateAccount(t *testing.T) {
	a := sampleAccount()
	a.Name = "Renamed"
	svc := new(mockAccountService)
	svc.On("RenameAccount", mock.Anything, owner, a.ID, "Renamed", ledger.AccountTypeSavings).Return(a, nil)

	resp := newTestAPI(t, svc).Put("/v1/account/"+a.ID.String(), ownerHeader(), UpdateAccountBody{Name: "Renamed", Type: 1})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Renamed", body.Name)
	svc.AssertExpectations(t)
}

func TestHTTP_DeleteAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("DeleteAccount", mock.Anything, owner, id).Return(nil)

	resp := newTestAPI(t, svc).Delete("/v1/account/"+id.String(), ownerHeader())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_RecalculateAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("Recalculate", mock.Anything, owner, id).Return(decimal.RequireFromString("42.10"), nil)

	resp := newTestAPI(t, svc).Post("/v1/account/"+id.String()+"/recalculate", ownerHeader())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body RecalculateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "42.1", body.Balance)
}
