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
)

type MonthlyDashboardInput struct {
	common.OwnerHeader
	Year  int `query:"year" required:"true" minimum:"1" maximum:"9999" doc:"Calendar year"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month, 1-12"`
}

type MonthlyDashboardBody struct {
	Entries []Entry `json:"entries" doc:"Entries dated in the month plus projected fixed-monthly occurrences, by date"`
}

type MonthlyDashboardOutput struct {
	Body MonthlyDashboardBody
}

type dashboardReader interface {
	MonthlyDashboard(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) ([]ledger.DashboardLine, error)
}

// MonthlyDashboardHandler handles GET /v1/entry/month.
type MonthlyDashboardHandler struct {
	EntryService dashboardReader
}

func NewMonthlyDashboardHandler(svc dashboardReader) *MonthlyDashboardHandler {
	return &MonthlyDashboardHandler{EntryService: svc}
}

func (h *MonthlyDashboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/entry/month",
		Summary:     "Monthly dashboard",
		Description: "Lists the month's entries together with projected occurrences of fixed-monthly templates.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

func (h *MonthlyDashboardHandler) handle(ctx context.Context, input *MonthlyDashboardInput) (*MonthlyDashboardOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	lines, err := h.EntryService.MonthlyDashboard(ctx, ownerID, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to build dashboard")
	}

	out := &MonthlyDashboardOutput{Body: MonthlyDashboardBody{Entries: make([]Entry, len(lines))}}
	projected := 0
	for i, l := range lines {
		out.Body.Entries[i] = fromLine(l)
		if l.IsProjection() {
			projected++
		}
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("lineCount", len(lines))
		logData.AddData("projectedCount", projected)
	}
	return out, nil
}
