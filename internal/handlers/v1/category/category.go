package category

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

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Type      string `json:"type" enum:"income,expense" doc:"Entry type this category applies to"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

type CreateCategoryBody struct {
	Name string `json:"name" minLength:"1" doc:"Category name, unique per owner"`
	Type string `json:"type" enum:"income,expense" doc:"Entry type this category applies to"`
}

type CreateCategoryInput struct {
	common.OwnerHeader
	Body CreateCategoryBody
}

type CreateCategoryResponse struct {
	ID string `json:"id" doc:"Created category UUID"`
}

type CreateCategoryOutput struct {
	Status int
	Body   CreateCategoryResponse
}

type ListCategoriesInput struct {
	common.OwnerHeader
}

type ListCategoriesBody struct {
	Categories []Category `json:"categories" doc:"All categories of the owner ordered by name"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesBody
}

type DeleteCategoryInput struct {
	common.OwnerHeader
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

type categoryService interface {
	CreateCategory(ctx context.Context, ownerID uuid.UUID, name string, entryType ledger.EntryType) (uuid.UUID, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create a category",
		Tags:        []string{"Categories"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete a category",
		Description:   "Entries keep existing and lose their category.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	id, err := h.CategoryService.CreateCategory(ctx, ownerID, input.Body.Name, ledger.EntryType(input.Body.Type))
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to create category")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryID", id.String())
	}
	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   CreateCategoryResponse{ID: id.String()},
	}, nil
}

func (h *Handler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	categories, err := h.CategoryService.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, common.ToHTTPError(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = Category{
			ID:        c.ID.String(),
			Name:      c.Name,
			Type:      string(c.Type),
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	id, err := common.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err = h.CategoryService.DeleteCategory(ctx, ownerID, id); err != nil {
		return nil, common.ToHTTPError(err, "failed to delete category")
	}
	return nil, nil
}
