package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
)

// AccountPathInput addresses one account.
type AccountPathInput struct {
	common.OwnerHeader
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

type UpdateAccountBody struct {
	Name string `json:"name" minLength:"1" doc:"Account name"`
	Type int    `json:"type" minimum:"0" maximum:"4" doc:"Account type: 0=Checking, 1=Savings, 2=Credit Card, 3=Investment, 4=Other"`
}

type UpdateAccountInput struct {
	AccountPathInput
	Body UpdateAccountBody
}

type RecalculateResponse struct {
	Balance string `json:"balance" doc:"Reconciled decimal balance"`
}

type RecalculateOutput struct {
	Body RecalculateResponse
}

// accountManager covers the single-account endpoints.
type accountManager interface {
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error)
	RenameAccount(ctx context.Context, ownerID, id uuid.UUID, name string, accountType ledger.AccountType) (*ledger.Account, error)
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
	Recalculate(ctx context.Context, ownerID, id uuid.UUID) (decimal.Decimal, error)
}

// ManageAccountHandler handles GET, PUT and DELETE /v1/account/{id} and
// POST /v1/account/{id}/recalculate.
type ManageAccountHandler struct {
	AccountService accountManager
}

func NewManageAccountHandler(svc accountManager) *ManageAccountHandler {
	return &ManageAccountHandler{AccountService: svc}
}

func (h *ManageAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}",
		Summary:     "Rename an account",
		Description: "Changes the name and type. Balances cannot be edited.",
		Tags:        []string{"Accounts"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/account/{id}",
		Summary:       "Delete an account",
		Description:   "Deletes the account and all of its entries.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "recalculate-account",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/recalculate",
		Summary:     "Recalculate an account balance",
		Tags:        []string{"Accounts"},
	}, h.recalculate)
}

func (in AccountPathInput) parse() (uuid.UUID, uuid.UUID, error) {
	ownerID, err := in.Owner()
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := common.ParseID("id", in.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return ownerID, id, nil
}

func (h *ManageAccountHandler) get(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}
	a, err := h.AccountService.GetAccount(ctx, ownerID, id)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to get account")
	}
	return &AccountOutput{Body: fromLedger(a)}, nil
}

func (h *ManageAccountHandler) update(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}
	a, err := h.AccountService.RenameAccount(ctx, ownerID, id, input.Body.Name, ledger.AccountType(input.Body.Type))
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to update account")
	}
	return &AccountOutput{Body: fromLedger(a)}, nil
}

func (h *ManageAccountHandler) delete(ctx context.Context, input *AccountPathInput) (*struct{}, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}
	if err = h.AccountService.DeleteAccount(ctx, ownerID, id); err != nil {
		return nil, common.ToHTTPError(err, "failed to delete account")
	}
	return nil, nil
}

func (h *ManageAccountHandler) recalculate(ctx context.Context, input *AccountPathInput) (*RecalculateOutput, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		defer logData.AddTiming("recalculateMs")()
		logData.AddData("accountID", id.String())
	}

	balance, err := h.AccountService.Recalculate(ctx, ownerID, id)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to recalculate account")
	}
	return &RecalculateOutput{Body: RecalculateResponse{Balance: balance.String()}}, nil
}
