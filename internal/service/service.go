package service

import (
	"context"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

const defaultLimit = 20

// processor runs a mutating action in its own write transaction.
type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account  *AccountService
	Category *CategoryService
	Entry    *EntryService
	Transfer *TransferService
	Rule     *RuleService
}

// NewService wires every service to the same storage, operator and planner.
func NewService(store *storage.Storage, proc processor, planner *ledger.Planner) *Service {
	return &Service{
		Account:  NewAccountService(store, proc, planner),
		Category: NewCategoryService(store, proc, planner),
		Entry:    NewEntryService(store, proc, planner),
		Transfer: NewTransferService(proc, planner),
		Rule:     NewRuleService(store, proc, planner),
	}
}
