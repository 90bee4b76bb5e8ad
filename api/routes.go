package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/account"
	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/category"
	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/entry"
	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/rule"
	schedulerhandler "github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/scheduler"
	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/status"
	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/transfer"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/scheduler"
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Service   *service.Service
	Scheduler *scheduler.Scheduler
	// DB is checked by /status; nil with the in-memory store.
	DB *sql.DB
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the mux with every v1 operation and /status.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	api := humago.New(mux, huma.DefaultConfig("Household Finance Manager", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	handlers := []registrar{
		account.NewCreateAccountHandler(r.Service.Account),
		account.NewListAccountsHandler(r.Service.Account),
		account.NewManageAccountHandler(r.Service.Account),
		category.NewHandler(r.Service.Category),
		entry.NewCreateEntryHandler(r.Service.Entry),
		entry.NewListEntriesHandler(r.Service.Entry),
		entry.NewManageEntryHandler(r.Service.Entry),
		entry.NewMonthlyDashboardHandler(r.Service.Entry),
		transfer.NewCreateTransferHandler(r.Service.Transfer),
		rule.NewHandler(r.Service.Rule),
		schedulerhandler.NewRunHandler(r.Scheduler),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	statusHandler := status.NewHandler(nil)
	if r.DB != nil {
		statusHandler = status.NewHandler(r.DB)
	}
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
