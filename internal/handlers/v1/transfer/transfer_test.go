package transfer

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

type mockTransferService struct {
	mock.Mock
}

func (m *mockTransferService) CreateTransfer(ctx context.Context, req ledger.TransferRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

var owner = uuid.Must(uuid.NewV4())

func newTestAPI(t *testing.T, svc *mockTransferService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransferHandler(svc).Register(api)
	return api
}

func TestParseCreateTransferInput_Defaults(t *testing.T) {
	from, to := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	req, err := parseCreateTransferInput(owner, &CreateTransferInput{Body: CreateTransferBody{
		FromAccountID: from.String(),
		ToAccountID:   to.String(),
		Amount:        "25.5",
		Date:          "2024-05-31",
	}})
	require.NoError(t, err)
	assert.Equal(t, from, req.FromAccountID)
	assert.Equal(t, to, req.ToAccountID)
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(t, ledger.StatusPending, req.Status)
	assert.Equal(t, ledger.FrequencyNone, req.Frequency)
}

func TestHTTP_CreateTransfer(t *testing.T) {
	from, to := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	legID := uuid.Must(uuid.NewV4())
	svc := new(mockTransferService)
	svc.On("CreateTransfer", mock.Anything, mock.MatchedBy(func(r ledger.TransferRequest) bool {
		return r.OwnerID == owner && r.FromAccountID == from && r.ToAccountID == to &&
			r.Frequency == ledger.FrequencyInstallment && r.Installments == 2
	})).Return(legID, nil)

	resp := newTestAPI(t, svc).Post("/v1/transfer", "X-Owner-ID: "+owner.String(), CreateTransferBody{
		FromAccountID: from.String(),
		ToAccountID:   to.String(),
		Amount:        "100",
		Date:          "2024-01-10",
		Status:        "completed",
		Frequency:     "installment",
		Installments:  2,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, legID.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransfer_SameAccount(t *testing.T) {
	account := uuid.Must(uuid.NewV4())
	svc := new(mockTransferService)
	svc.On("CreateTransfer", mock.Anything, mock.Anything).Return(uuid.Nil, ledger.Invalid("", "accounts must differ"))

	resp := newTestAPI(t, svc).Post("/v1/transfer", "X-Owner-ID: "+owner.String(), CreateTransferBody{
		FromAccountID: account.String(),
		ToAccountID:   account.String(),
		Amount:        "100",
		Date:          "2024-01-10",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateTransfer_UnknownAccount(t *testing.T) {
	from := uuid.Must(uuid.NewV4())
	svc := new(mockTransferService)
	svc.On("CreateTransfer", mock.Anything, mock.Anything).Return(uuid.Nil, ledger.NotFound("account", from))

	resp := newTestAPI(t, svc).Post("/v1/transfer", "X-Owner-ID: "+owner.String(), CreateTransferBody{
		FromAccountID: from.String(),
		ToAccountID:   uuid.Must(uuid.NewV4()).String(),
		Amount:        "100",
		Date:          "2024-01-10",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
