package catalog

// Product represents a catalog entry. Codes are immutable after creation and
// stay reserved even when the product is deactivated. CreatedAt carries the
// local wall-clock time as stored ("2006-01-02 15:04:05").
type Product struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

type CreateProductRequest struct {
	Code  string  `json:"code" validate:"required,max=50"`
	Name  string  `json:"name" validate:"required,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateProductRequest changes name and price only; code and timestamps are
// immutable through this path.
type UpdateProductRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
}

type ToggleStatusRequest struct {
	IsActive bool `json:"is_active"`
}
