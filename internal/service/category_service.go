package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

type CategoryService struct {
	storage *storage.Storage
	proc    processor
	planner *ledger.Planner
}

func NewCategoryService(store *storage.Storage, proc processor, planner *ledger.Planner) *CategoryService {
	return &CategoryService{storage: store, proc: proc, planner: planner}
}

func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, name string, entryType ledger.EntryType) (uuid.UUID, error) {
	c := &ledger.Category{
		ID:        s.planner.NewID(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      entryType,
		CreatedAt: s.planner.Now().UTC(),
	}
	if err := s.proc.Process(ctx, &actions.CreateCategory{Category: c}); err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Category, error) {
	return s.storage.Reader.Categories.List(ctx, ownerID)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.proc.Process(ctx, &actions.DeleteCategory{OwnerID: ownerID, ID: id})
}
