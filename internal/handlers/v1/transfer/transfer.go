package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
)

// CreateTransferBody is the request body for moving money between two accounts.
type CreateTransferBody struct {
	FromAccountID string `json:"fromAccountId" format:"uuid" doc:"Account the money leaves"`
	ToAccountID   string `json:"toAccountId" format:"uuid" doc:"Account the money enters"`
	Amount        string `json:"amount" doc:"Positive decimal amount"`
	Date          string `json:"date" doc:"Date of the first occurrence (YYYY-MM-DD)"`
	Description   string `json:"description,omitempty" doc:"Free-form description, defaults to the counterpart account name"`
	Status        string `json:"status,omitempty" enum:"pending,completed" doc:"Status of the first pair, defaults to pending"`
	Frequency     string `json:"frequency,omitempty" enum:"none,installment,fixed_monthly" doc:"Recurrence, defaults to none"`
	Installments  int    `json:"installments,omitempty" minimum:"0" doc:"Number of installment pairs"`
}

type CreateTransferInput struct {
	common.OwnerHeader
	Body CreateTransferBody
}

type CreateTransferResponse struct {
	ID string `json:"id" doc:"UUID of the first outgoing leg"`
}

type CreateTransferOutput struct {
	Status int
	Body   CreateTransferResponse
}

type transferCreator interface {
	CreateTransfer(ctx context.Context, req ledger.TransferRequest) (uuid.UUID, error)
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	TransferService transferCreator
}

func NewCreateTransferHandler(svc transferCreator) *CreateTransferHandler {
	return &CreateTransferHandler{TransferService: svc}
}

func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Create a transfer",
		Description: "Books an expense leg on the source and an income leg on the target account in one step.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseCreateTransferInput(ownerID uuid.UUID, input *CreateTransferInput) (ledger.TransferRequest, error) {
	b := input.Body
	from, err := common.ParseID("fromAccountId", b.FromAccountID)
	if err != nil {
		return ledger.TransferRequest{}, err
	}
	to, err := common.ParseID("toAccountId", b.ToAccountID)
	if err != nil {
		return ledger.TransferRequest{}, err
	}
	amount, err := common.ParseDecimal("amount", b.Amount)
	if err != nil {
		return ledger.TransferRequest{}, err
	}
	date, err := common.ParseDate("date", b.Date)
	if err != nil {
		return ledger.TransferRequest{}, err
	}

	req := ledger.TransferRequest{
		OwnerID:       ownerID,
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
		Date:          date,
		Description:   b.Description,
		Status:        ledger.Status(b.Status),
		Frequency:     ledger.Frequency(b.Frequency),
		Installments:  b.Installments,
	}
	if req.Status == "" {
		req.Status = ledger.StatusPending
	}
	if req.Frequency == "" {
		req.Frequency = ledger.FrequencyNone
	}
	return req, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	req, err := parseCreateTransferInput(ownerID, input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransferMs")
	}
	id, err := h.TransferService.CreateTransfer(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to create transfer")
	}

	if logData != nil {
		logData.AddData("transferLegID", id.String())
	}
	return &CreateTransferOutput{Status: http.StatusCreated, Body: CreateTransferResponse{ID: id.String()}}, nil
}
