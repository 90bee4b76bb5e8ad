package entry

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
)

type EntryPathInput struct {
	common.OwnerHeader
	ID string `path:"id" format:"uuid" doc:"Entry UUID"`
}

func (in EntryPathInput) parse() (uuid.UUID, uuid.UUID, error) {
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

// UpdateEntryBody lists the editable fields; omitted fields keep their value.
// An empty categoryId clears the category.
type UpdateEntryBody struct {
	AccountID   *string `json:"accountId,omitempty" doc:"Move the entry to this account"`
	Type        *string `json:"type,omitempty" enum:"income,expense" doc:"Entry type"`
	Amount      *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Date        *string `json:"date,omitempty" doc:"Entry date (YYYY-MM-DD)"`
	CategoryID  *string `json:"categoryId,omitempty" doc:"Category UUID, empty to clear"`
	Description *string `json:"description,omitempty" doc:"Free-form description"`
}

type UpdateEntryInput struct {
	EntryPathInput
	Body UpdateEntryBody
}

type EntryOutput struct {
	Body Entry
}

type CompleteEntryBody struct {
	OccurrenceDate string `json:"occurrenceDate,omitempty" doc:"Any date in the period to complete for a fixed-monthly template (YYYY-MM-DD), defaults to today"`
}

type CompleteEntryInput struct {
	EntryPathInput
	Body *CompleteEntryBody
}

type CompleteEntryResponse struct {
	ID string `json:"id" doc:"UUID of the completed row; differs from the path id when an occurrence was materialized"`
}

type CompleteEntryOutput struct {
	Body CompleteEntryResponse
}

type entryManager interface {
	UpdateEntry(ctx context.Context, ownerID, id uuid.UUID, changes actions.EntryChanges) (*ledger.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, id uuid.UUID) error
	CompleteEntry(ctx context.Context, ownerID, id uuid.UUID, occurrenceDate *time.Time) (uuid.UUID, error)
}

// ManageEntryHandler handles PUT and DELETE /v1/entry/{id} and POST /v1/entry/{id}/complete.
type ManageEntryHandler struct {
	EntryService entryManager
}

func NewManageEntryHandler(svc entryManager) *ManageEntryHandler {
	return &ManageEntryHandler{EntryService: svc}
}

func (h *ManageEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-entry",
		Method:      http.MethodPut,
		Path:        "/v1/entry/{id}",
		Summary:     "Update an entry",
		Description: "Edits one row. Transfer legs only accept date, category and description changes.",
		Tags:        []string{"Entries"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-entry",
		Method:        http.MethodDelete,
		Path:          "/v1/entry/{id}",
		Summary:       "Delete an entry",
		Description:   "Deletes one row, and the counterpart leg of a transfer. Series siblings are kept.",
		Tags:          []string{"Entries"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "complete-entry",
		Method:      http.MethodPost,
		Path:        "/v1/entry/{id}/complete",
		Summary:     "Complete an entry",
		Description: "Marks a pending entry completed today. A fixed-monthly template completes the occurrence of the requested period.",
		Tags:        []string{"Entries"},
	}, h.complete)
}

func parseEntryChanges(b UpdateEntryBody) (actions.EntryChanges, error) {
	var c actions.EntryChanges
	if b.AccountID != nil {
		id, err := common.ParseID("accountId", *b.AccountID)
		if err != nil {
			return c, err
		}
		c.AccountID = &id
	}
	if b.Type != nil {
		t := ledger.EntryType(*b.Type)
		c.Type = &t
	}
	if b.Amount != nil {
		amount, err := common.ParseDecimal("amount", *b.Amount)
		if err != nil {
			return c, err
		}
		c.Amount = &amount
	}
	if b.Date != nil {
		date, err := common.ParseDate("date", *b.Date)
		if err != nil {
			return c, err
		}
		c.Date = &date
	}
	if b.CategoryID != nil {
		categoryID, err := common.ParseOptionalID("categoryId", *b.CategoryID)
		if err != nil {
			return c, err
		}
		c.CategoryID = &categoryID
	}
	c.Description = b.Description
	return c, nil
}

func (h *ManageEntryHandler) update(ctx context.Context, input *UpdateEntryInput) (*EntryOutput, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}
	changes, err := parseEntryChanges(input.Body)
	if err != nil {
		return nil, err
	}
	e, err := h.EntryService.UpdateEntry(ctx, ownerID, id, changes)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to update entry")
	}
	return &EntryOutput{Body: fromLedger(e)}, nil
}

func (h *ManageEntryHandler) delete(ctx context.Context, input *EntryPathInput) (*struct{}, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}
	if err = h.EntryService.DeleteEntry(ctx, ownerID, id); err != nil {
		return nil, common.ToHTTPError(err, "failed to delete entry")
	}
	return nil, nil
}

func (h *ManageEntryHandler) complete(ctx context.Context, input *CompleteEntryInput) (*CompleteEntryOutput, error) {
	ownerID, id, err := input.parse()
	if err != nil {
		return nil, err
	}

	var occurrence *time.Time
	if input.Body != nil && input.Body.OccurrenceDate != "" {
		date, err := common.ParseDate("occurrenceDate", input.Body.OccurrenceDate)
		if err != nil {
			return nil, err
		}
		occurrence = &date
	}

	completedID, err := h.EntryService.CompleteEntry(ctx, ownerID, id, occurrence)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to complete entry")
	}
	if logData := logging.GetLogData(ctx); logData != nil && completedID != id {
		logData.AddData("materializedID", completedID.String())
	}
	return &CompleteEntryOutput{Body: CompleteEntryResponse{ID: completedID.String()}}, nil
}
