package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/config"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/logging"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator"
	"github.com/cesarberbelbr/household-finance-manager/internal/scheduler"
	"github.com/cesarberbelbr/household-finance-manager/internal/service"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/memory"
)

// app is everything a command needs, built from one Config.
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	storage   *storage.Storage
	delegator *operator.OperatorDelegator
	service   *service.Service
	scheduler *scheduler.Scheduler
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.SetupLogging(cfg.Log.Level)
	logging.UseAsStandard(logger)

	store, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	planner := ledger.NewPlanner(cfg.Ledger.Policy())
	loc := cfg.Scheduler.Location()
	planner.Now = func() time.Time { return time.Now().In(loc) }

	delegator := operator.NewOperatorDelegator(store, cfg.Operator)
	delegator.Start()

	return &app{
		cfg:       cfg,
		logger:    logger,
		storage:   store,
		delegator: delegator,
		service:   service.NewService(store, delegator, planner),
		scheduler: scheduler.NewScheduler(delegator, planner, cfg.Scheduler.Interval),
	}, nil
}

func openStorage(cfg *config.Config) (*storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewStorage(), nil
	case config.DriverPostgres:
		return storage.NewStorage(cfg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// close drains the operator before the database goes away.
func (a *app) close() {
	a.delegator.Stop()
	if err := a.storage.Close(); err != nil {
		a.logger.WithError(err).Error("Storage.Close.Error")
	}
}
