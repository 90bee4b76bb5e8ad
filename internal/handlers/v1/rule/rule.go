package rule

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
)

// Rule is the API response model for a recurring rule.
type Rule struct {
	ID          string `json:"id" doc:"Rule UUID"`
	AccountID   string `json:"accountId" doc:"Account the generated entries are booked to"`
	CategoryID  string `json:"categoryId,omitempty" doc:"Optional category UUID"`
	Type        string `json:"type" enum:"income,expense" doc:"Entry type of generated entries"`
	Amount      string `json:"amount" doc:"Decimal amount of each generated entry"`
	Description string `json:"description" doc:"Description of generated entries"`
	Frequency   string `json:"frequency" enum:"daily,weekly,monthly" doc:"How often the rule fires"`
	StartDate   string `json:"startDate" doc:"First date (YYYY-MM-DD)"`
	EndDate     string `json:"endDate,omitempty" doc:"Last date (YYYY-MM-DD), absent when open-ended"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromLedger(r *ledger.RecurringRule) Rule {
	out := Rule{
		ID:          r.ID.String(),
		AccountID:   r.AccountID.String(),
		CategoryID:  common.FormatOptionalID(r.CategoryID),
		Type:        string(r.Type),
		Amount:      r.Amount.String(),
		Description: r.Description,
		Frequency:   string(r.Frequency),
		StartDate:   common.FormatDate(r.StartDate),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.EndDate != nil {
		out.EndDate = common.FormatDate(*r.EndDate)
	}
	return out
}

type CreateRuleBody struct {
	AccountID   string `json:"accountId" format:"uuid" doc:"Account UUID"`
	CategoryID  string `json:"categoryId,omitempty" doc:"Optional category UUID"`
	Type        string `json:"type" enum:"income,expense" doc:"Entry type of generated entries"`
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Description string `json:"description,omitempty" doc:"Description of generated entries"`
	Frequency   string `json:"frequency" enum:"daily,weekly,monthly" doc:"How often the rule fires"`
	StartDate   string `json:"startDate" doc:"First date (YYYY-MM-DD)"`
	EndDate     string `json:"endDate,omitempty" doc:"Last date (YYYY-MM-DD)"`
}

type CreateRuleInput struct {
	common.OwnerHeader
	Body CreateRuleBody
}

type CreateRuleResponse struct {
	ID string `json:"id" doc:"Created rule UUID"`
}

type CreateRuleOutput struct {
	Status int
	Body   CreateRuleResponse
}

type ListRulesInput struct {
	common.OwnerHeader
}

type ListRulesBody struct {
	Rules []Rule `json:"rules" doc:"Recurring rules of the owner"`
}

type ListRulesOutput struct {
	Body ListRulesBody
}

type DeleteRuleInput struct {
	common.OwnerHeader
	ID string `path:"id" format:"uuid" doc:"Rule UUID"`
}

type ruleService interface {
	CreateRule(ctx context.Context, ownerID uuid.UUID, create service.RuleCreate) (uuid.UUID, error)
	ListRules(ctx context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error)
	DeleteRule(ctx context.Context, ownerID, id uuid.UUID) error
}

// Handler serves /v1/rule.
type Handler struct {
	RuleService ruleService
}

func NewHandler(svc ruleService) *Handler {
	return &Handler{RuleService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-rule",
		Method:      http.MethodPost,
		Path:        "/v1/rule",
		Summary:     "Create a recurring rule",
		Description: "The scheduler books one entry for every day the rule is due.",
		Tags:        []string{"Rules"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-rules",
		Method:      http.MethodGet,
		Path:        "/v1/rule",
		Summary:     "List recurring rules",
		Tags:        []string{"Rules"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-rule",
		Method:        http.MethodDelete,
		Path:          "/v1/rule/{id}",
		Summary:       "Delete a recurring rule",
		Description:   "Entries the rule already produced are kept.",
		Tags:          []string{"Rules"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func parseCreateRuleInput(input *CreateRuleInput) (service.RuleCreate, error) {
	b := input.Body
	accountID, err := common.ParseID("accountId", b.AccountID)
	if err != nil {
		return service.RuleCreate{}, err
	}
	categoryID, err := common.ParseOptionalID("categoryId", b.CategoryID)
	if err != nil {
		return service.RuleCreate{}, err
	}
	amount, err := common.ParseDecimal("amount", b.Amount)
	if err != nil {
		return service.RuleCreate{}, err
	}
	start, err := common.ParseDate("startDate", b.StartDate)
	if err != nil {
		return service.RuleCreate{}, err
	}

	create := service.RuleCreate{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        ledger.EntryType(b.Type),
		Amount:      amount,
		Description: b.Description,
		Frequency:   ledger.RuleFrequency(b.Frequency),
		StartDate:   start,
	}
	if b.EndDate != "" {
		end, err := common.ParseDate("endDate", b.EndDate)
		if err != nil {
			return service.RuleCreate{}, err
		}
		create.EndDate = &end
	}
	return create, nil
}

func (h *Handler) create(ctx context.Context, input *CreateRuleInput) (*CreateRuleOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	create, err := parseCreateRuleInput(input)
	if err != nil {
		return nil, err
	}
	id, err := h.RuleService.CreateRule(ctx, ownerID, create)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to create rule")
	}
	return &CreateRuleOutput{
		Status: http.StatusCreated,
		Body:   CreateRuleResponse{ID: id.String()},
	}, nil
}

func (h *Handler) list(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	rules, err := h.RuleService.ListRules(ctx, ownerID)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to list rules")
	}
	out := &ListRulesOutput{Body: ListRulesBody{Rules: make([]Rule, len(rules))}}
	for i, r := range rules {
		out.Body.Rules[i] = fromLedger(r)
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteRuleInput) (*struct{}, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	id, err := common.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err = h.RuleService.DeleteRule(ctx, ownerID, id); err != nil {
		return nil, common.ToHTTPError(err, "failed to delete rule")
	}
	return nil, nil
}
