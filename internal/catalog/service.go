package catalog

import (
	"context"
	"fmt"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns products newest-first. The search term matches name or code as
// a case-insensitive substring. Pagination is left to the caller.
func (s *Service) List(ctx context.Context, search string, includeInactive bool) ([]Product, error) {
	return s.repo.List(ctx, search, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("invalid product ID: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	if err := validateCreate(req); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) error {
	if id <= 0 {
		return fmt.Errorf("invalid product ID: %w", httpx.ErrValidation)
	}
	if err := validateUpdate(req); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, req)
}

// Deactivate soft-deletes a product. Historical sales keep their snapshots.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.SetActive(ctx, id, false)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return fmt.Errorf("invalid product ID: %w", httpx.ErrValidation)
	}
	return s.repo.SetActive(ctx, id, active)
}

// FindByCode resolves an exact scanner code against active products only. A
// miss comes back as ErrNotFound so the caller can branch into quick-create.
func (s *Service) FindByCode(ctx context.Context, code string) (Product, error) {
	if code == "" {
		return Product{}, fmt.Errorf("product code is required: %w", httpx.ErrValidation)
	}
	return s.repo.FindByCode(ctx, code)
}
