package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
)

type TransferService struct {
	proc    processor
	planner *ledger.Planner
}

func NewTransferService(proc processor, planner *ledger.Planner) *TransferService {
	return &TransferService{proc: proc, planner: planner}
}

// CreateTransfer returns the id of the first outgoing leg.
func (s *TransferService) CreateTransfer(ctx context.Context, req ledger.TransferRequest) (uuid.UUID, error) {
	action := &actions.CreateTransfer{Planner: s.planner, Request: req}
	if err := s.proc.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.FirstLegID, nil
}
