package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// RuleCreate holds the fields of a new recurring rule.
type RuleCreate struct {
	AccountID   uuid.UUID
	CategoryID  uuid.NullUUID
	Type        ledger.EntryType
	Amount      decimal.Decimal
	Description string
	Frequency   ledger.RuleFrequency
	StartDate   time.Time
	EndDate     *time.Time
}

type RuleService struct {
	storage *storage.Storage
	proc    processor
	planner *ledger.Planner
}

func NewRuleService(store *storage.Storage, proc processor, planner *ledger.Planner) *RuleService {
	return &RuleService{storage: store, proc: proc, planner: planner}
}

func (s *RuleService) CreateRule(ctx context.Context, ownerID uuid.UUID, create RuleCreate) (uuid.UUID, error) {
	r := &ledger.RecurringRule{
		ID:          s.planner.NewID(),
		OwnerID:     ownerID,
		AccountID:   create.AccountID,
		CategoryID:  create.CategoryID,
		Type:        create.Type,
		Amount:      create.Amount,
		Description: create.Description,
		Frequency:   create.Frequency,
		StartDate:   ledger.DateOf(create.StartDate),
		CreatedAt:   s.planner.Now().UTC(),
	}
	if create.EndDate != nil {
		end := ledger.DateOf(*create.EndDate)
		r.EndDate = &end
	}
	if err := s.proc.Process(ctx, &actions.CreateRule{Rule: r}); err != nil {
		return uuid.Nil, err
	}
	return r.ID, nil
}

func (s *RuleService) ListRules(ctx context.Context, ownerID uuid.UUID) ([]*ledger.RecurringRule, error) {
	return s.storage.Reader.Rules.List(ctx, ownerID)
}

func (s *RuleService) DeleteRule(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.proc.Process(ctx, &actions.DeleteRule{OwnerID: ownerID, ID: id})
}
