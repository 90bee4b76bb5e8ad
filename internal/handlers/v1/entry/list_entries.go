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
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
)

// ListEntriesCursor bundles position, limit and maxCreationTime so later
// pages use the parameters of the first one.
type ListEntriesCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

type ListEntriesBody struct {
	AccountID string             `json:"accountId,omitempty" doc:"Only list entries of this account"`
	Cursor    *ListEntriesCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

type ListEntriesInput struct {
	common.OwnerHeader
	Body ListEntriesBody
}

type ListEntriesResponseBody struct {
	Entries    []Entry            `json:"entries" doc:"Page of entries, newest date first"`
	NextCursor *ListEntriesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListEntriesOutput struct {
	Body ListEntriesResponseBody
}

type entryLister interface {
	ListEntries(ctx context.Context, ownerID uuid.UUID, accountID *uuid.UUID, cursor *service.EntryCursor) ([]*ledger.Entry, *service.EntryCursor, error)
}

// ListEntriesHandler handles POST /v1/entry/list.
type ListEntriesHandler struct {
	EntryService entryLister
}

func NewListEntriesHandler(svc entryLister) *ListEntriesHandler {
	return &ListEntriesHandler{EntryService: svc}
}

func (h *ListEntriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-entries",
		Method:      http.MethodPost,
		Path:        "/v1/entry/list",
		Summary:     "List entries",
		Description: "Returns a paginated list of persisted entries using cursor-based pagination.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

// parseListEntriesInput returns a nil cursor for the first page.
func parseListEntriesInput(input *ListEntriesInput) (*uuid.UUID, *service.EntryCursor, error) {
	var accountID *uuid.UUID
	if input.Body.AccountID != "" {
		id, err := common.ParseID("accountId", input.Body.AccountID)
		if err != nil {
			return nil, nil, err
		}
		accountID = &id
	}

	if input.Body.Cursor == nil {
		return accountID, nil, nil
	}
	maxCreationTime, err := time.Parse(time.RFC3339Nano, input.Body.Cursor.MaxCreationTime)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}
	return accountID, &service.EntryCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListEntriesHandler) handle(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	accountID, cursor, err := parseListEntriesInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listEntriesMs")
	}
	entries, nextCursor, err := h.EntryService.ListEntries(ctx, ownerID, accountID, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to list entries")
	}

	if logData != nil {
		logData.AddData("entryCount", len(entries))
	}

	resp := ListEntriesResponseBody{Entries: make([]Entry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = fromLedger(e)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListEntriesCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339Nano),
		}
	}
	return &ListEntriesOutput{Body: resp}, nil
}
