package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

const defaultHistoryLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a checkout atomically: the sale header and every line item
// commit together or not at all. The unit price of each item is the cart
// snapshot supplied by the caller and is stored verbatim; re-validating it
// against the live catalog price is a product decision this layer does not
// take. The timestamp is always server-assigned.
func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (CreateSaleResult, error) {
	if err := validateCreateSale(req); err != nil {
		return CreateSaleResult{}, err
	}

	var saleID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.InsertSale(ctx, req.Total, req.PaymentMethod)
		if err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		saleID = id

		for _, entry := range req.Items {
			item := SaleItem{
				SaleID:      saleID,
				ProductID:   entry.ProductID,
				ProductName: entry.Name,
				Quantity:    entry.Quantity,
				UnitPrice:   entry.Price,
				Subtotal:    entry.Price * float64(entry.Quantity),
			}
			if _, err := repo.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("create sale item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return CreateSaleResult{}, err
	}
	return CreateSaleResult{Success: true, SaleID: saleID}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	if id <= 0 {
		return Sale{}, fmt.Errorf("invalid sale ID: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// History returns sales newest-first with their items attached. The date
// window is applied only when both bounds are present.
func (s *Service) History(ctx context.Context, req HistoryRequest) ([]Sale, error) {
	if req.Limit <= 0 {
		req.Limit = defaultHistoryLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	if err := validateWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, req)
}

// Cancel flips a sale to cancelled. Cancelling an already-cancelled sale is a
// no-op for the data.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid sale ID: %w", httpx.ErrValidation)
	}
	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

// Restore flips a cancelled sale back to completed.
func (s *Service) Restore(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid sale ID: %w", httpx.ErrValidation)
	}
	return s.repo.UpdateStatus(ctx, id, StatusCompleted)
}

func validateCreateSale(req CreateSaleRequest) error {
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return fmt.Errorf("payment method is required: %w", httpx.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("a sale needs at least one item: %w", httpx.ErrValidation)
	}
	if req.Total < 0 {
		return fmt.Errorf("total must not be negative: %w", httpx.ErrValidation)
	}
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("item %d: invalid product ID: %w", i, httpx.ErrValidation)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("item %d: product name is required: %w", i, httpx.ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive: %w", i, httpx.ErrValidation)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: unit price must not be negative: %w", i, httpx.ErrValidation)
		}
	}
	return nil
}

func validateWindow(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return fmt.Errorf("both start and end dates are required: %w", httpx.ErrValidation)
	}
	for _, d := range []string{start, end} {
		if _, err := time.ParseInLocation("2006-01-02", d, time.Local); err != nil {
			return fmt.Errorf("invalid date %q: %w", d, httpx.ErrValidation)
		}
	}
	return nil
}
