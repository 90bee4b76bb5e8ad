package entry

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
)

// CreateEntryBody is the request body for creating an entry or a recurring series.
type CreateEntryBody struct {
	AccountID    string `json:"accountId" format:"uuid" doc:"Account UUID"`
	CategoryID   string `json:"categoryId,omitempty" doc:"Optional category UUID"`
	Type         string `json:"type" enum:"income,expense" doc:"Entry type"`
	Amount       string `json:"amount" doc:"Positive decimal amount (e.g. '12.50')"`
	Date         string `json:"date" doc:"Date of the first occurrence (YYYY-MM-DD)"`
	Description  string `json:"description,omitempty" doc:"Free-form description"`
	Status       string `json:"status,omitempty" enum:"pending,completed" doc:"Status of the first occurrence, defaults to pending"`
	Frequency    string `json:"frequency,omitempty" enum:"none,installment,fixed_monthly" doc:"Recurrence, defaults to none"`
	Installments int    `json:"installments,omitempty" minimum:"0" doc:"Number of installments, required for installment frequency"`
}

type CreateEntryInput struct {
	common.OwnerHeader
	Body CreateEntryBody
}

type CreateEntryResponse struct {
	IDs []string `json:"ids" doc:"UUIDs of the persisted entries in series order"`
}

type CreateEntryOutput struct {
	Status int
	Body   CreateEntryResponse
}

type entryCreator interface {
	CreateEntry(ctx context.Context, req ledger.EntryRequest) ([]uuid.UUID, error)
}

// CreateEntryHandler handles POST /v1/entry.
type CreateEntryHandler struct {
	EntryService entryCreator
}

func NewCreateEntryHandler(svc entryCreator) *CreateEntryHandler {
	return &CreateEntryHandler{EntryService: svc}
}

func (h *CreateEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-entry",
		Method:      http.MethodPost,
		Path:        "/v1/entry",
		Summary:     "Create an entry",
		Description: "Creates a single entry, an installment series or a fixed-monthly template.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

// parseCreateEntryInput fills the defaults for status and frequency.
func parseCreateEntryInput(ownerID uuid.UUID, input *CreateEntryInput) (ledger.EntryRequest, error) {
	b := input.Body
	accountID, err := common.ParseID("accountId", b.AccountID)
	if err != nil {
		return ledger.EntryRequest{}, err
	}
	categoryID, err := common.ParseOptionalID("categoryId", b.CategoryID)
	if err != nil {
		return ledger.EntryRequest{}, err
	}
	amount, err := common.ParseDecimal("amount", b.Amount)
	if err != nil {
		return ledger.EntryRequest{}, err
	}
	date, err := common.ParseDate("date", b.Date)
	if err != nil {
		return ledger.EntryRequest{}, err
	}

	status := ledger.Status(b.Status)
	if status == "" {
		status = ledger.StatusPending
	}
	frequency := ledger.Frequency(b.Frequency)
	if frequency == "" {
		frequency = ledger.FrequencyNone
	}

	return ledger.EntryRequest{
		OwnerID:      ownerID,
		AccountID:    accountID,
		CategoryID:   categoryID,
		Type:         ledger.EntryType(b.Type),
		Amount:       amount,
		Date:         date,
		Description:  b.Description,
		Status:       status,
		Frequency:    frequency,
		Installments: b.Installments,
	}, nil
}

func (h *CreateEntryHandler) handle(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	req, err := parseCreateEntryInput(ownerID, input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createEntryMs")
	}
	ids, err := h.EntryService.CreateEntry(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to create entry")
	}

	if logData != nil {
		logData.AddData("entryCount", len(ids))
	}

	resp := CreateEntryResponse{IDs: make([]string, len(ids))}
	for i, id := range ids {
		resp.IDs[i] = id.String()
	}
	return &CreateEntryOutput{Status: http.StatusCreated, Body: resp}, nil
}
