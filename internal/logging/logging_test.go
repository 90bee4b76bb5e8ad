package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(level string) (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging(level)
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, SetupLogging("debug").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("nonsense").Level)
}

func TestLogData_Fields(t *testing.T) {
	logger, buf := captureLogger("info")
	logData := NewLogData(logger)
	logData.AddData("accountID", "abc")
	logData.AddTiming("queryMs")()

	logData.Log().Info("done")

	line := lastLine(t, buf)
	assert.Equal(t, "abc", line["accountID"])
	assert.Contains(t, line, "queryMs")
	assert.Equal(t, "info", line["loglevel"])
}

func TestGetLogData_Missing(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestLoggingWrapper(t *testing.T) {
	logger, buf := captureLogger("info")

	ok := LoggingWrapper("Ok", logger, func(w http.ResponseWriter, r *http.Request, l *LogData) error {
		assert.Same(t, l, GetLogData(r.Context()))
		w.WriteHeader(http.StatusOK)
		return nil
	})
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Handler.Ok.Complete", lastLine(t, buf)["msg"])

	failing := LoggingWrapper("Bad", logger, func(w http.ResponseWriter, r *http.Request, l *LogData) error {
		return errors.New("nope")
	})
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line := lastLine(t, buf)
	assert.Equal(t, "Handler.Bad.Error", line["msg"])
	assert.Equal(t, "nope", line["error"])
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	logger, buf := captureLogger("info")
	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.HasLogData = GetLogData(ctx) != nil
		return out, nil
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, true, body["hasLogData"])

	line := lastLine(t, buf)
	assert.Equal(t, "Handler.ping.Complete", line["msg"])
	assert.EqualValues(t, http.StatusOK, line["status"])
	assert.Equal(t, "/ping", line["path"])
}
