package catalog

import (
	"fmt"
	"strings"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

func validateCreate(req CreateProductRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("product code is required: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("product name is required: %w", httpx.ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("product price must not be negative: %w", httpx.ErrValidation)
	}
	return nil
}

func validateUpdate(req UpdateProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("product name is required: %w", httpx.ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("product price must not be negative: %w", httpx.ErrValidation)
	}
	return nil
}
