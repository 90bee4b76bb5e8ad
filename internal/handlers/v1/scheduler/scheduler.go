package scheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/scheduler"
)

type RunBody struct {
	Date string `json:"date,omitempty" doc:"Day to run for (YYYY-MM-DD), defaults to today"`
}

type RunInput struct {
	Body *RunBody
}

type RunResponse struct {
	Message         string `json:"message" doc:"Human readable summary"`
	RulesCreated    int    `json:"rulesCreated" doc:"Entries created by recurring rules"`
	Activated       int    `json:"activated" doc:"Due entries marked completed"`
	AccountsTouched int    `json:"accountsTouched" doc:"Accounts whose balance was recalculated"`
}

type RunOutput struct {
	Body RunResponse
}

type runner interface {
	RunOnce(ctx context.Context, today time.Time) (scheduler.Summary, error)
	Today() time.Time
}

// RunHandler handles POST /v1/scheduler/run.
type RunHandler struct {
	Scheduler runner
}

func NewRunHandler(s runner) *RunHandler {
	return &RunHandler{Scheduler: s}
}

func (h *RunHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-scheduler",
		Method:      http.MethodPost,
		Path:        "/v1/scheduler/run",
		Summary:     "Run the scheduler",
		Description: "Books due recurring rules, then completes every pending entry dated on or before the day.",
		Tags:        []string{"Scheduler"},
	}, h.handle)
}

func (h *RunHandler) handle(ctx context.Context, input *RunInput) (*RunOutput, error) {
	today := h.Scheduler.Today()
	if input.Body != nil && input.Body.Date != "" {
		date, err := common.ParseDate("date", input.Body.Date)
		if err != nil {
			return nil, err
		}
		today = date
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		defer logData.AddTiming("schedulerRunMs")()
	}

	summary, err := h.Scheduler.RunOnce(ctx, today)
	if err != nil {
		return nil, common.ToHTTPError(err, "scheduler run failed")
	}

	return &RunOutput{Body: RunResponse{
		Message:         summary.String(),
		RulesCreated:    summary.RulesCreated,
		Activated:       summary.Activation.Activated,
		AccountsTouched: len(summary.Activation.AccountsTouched),
	}}, nil
}
