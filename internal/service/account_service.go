package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	storage *storage.Storage
	proc    processor
	planner *ledger.Planner
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, proc processor, planner *ledger.Planner) *AccountService {
	return &AccountService{storage: store, proc: proc, planner: planner}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, create AccountCreate) (uuid.UUID, error) {
	a := &ledger.Account{
		ID:             s.planner.NewID(),
		OwnerID:        ownerID,
		Name:           create.Name,
		Type:           create.Type,
		InitialBalance: create.InitialBalance,
		CreatedAt:      s.planner.Now().UTC(),
	}
	if err := s.proc.Process(ctx, &actions.CreateAccount{Account: a}); err != nil {
		return uuid.Nil, err
	}
	return a.ID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	return s.storage.Reader.Accounts.FindByID(ctx, ownerID, id)
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *AccountCursor) ([]*ledger.Account, *AccountCursor, error) {
	filter := &account.AccountFilter{OwnerID: ownerID, Limit: defaultLimit}
	if cursor != nil {
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
	}

	result, err := s.storage.Reader.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Accounts) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if result.NextCursor != nil {
		nextCursor = &AccountCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}
	return result.Accounts, nextCursor, nil
}

// RenameAccount updates the name and type of an account.
func (s *AccountService) RenameAccount(ctx context.Context, ownerID, id uuid.UUID, name string, accountType ledger.AccountType) (*ledger.Account, error) {
	action := &actions.RenameAccount{OwnerID: ownerID, ID: id, Name: name, Type: accountType}
	if err := s.proc.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Account, nil
}

// DeleteAccount removes an account together with its entries.
func (s *AccountService) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.proc.Process(ctx, &actions.DeleteAccount{OwnerID: ownerID, ID: id})
}

// Recalculate reconciles the stored balance and returns it.
func (s *AccountService) Recalculate(ctx context.Context, ownerID, id uuid.UUID) (decimal.Decimal, error) {
	action := &actions.Recalculate{OwnerID: ownerID, ID: id}
	if err := s.proc.Process(ctx, action); err != nil {
		return decimal.Zero, err
	}
	return action.Balance, nil
}
