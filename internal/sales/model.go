package sales

// Status is the two-state, fully reversible sale lifecycle.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Sale is one checkout transaction. CreatedAt carries the local wall-clock
// time as stored ("2006-01-02 15:04:05").
type Sale struct {
	ID            int64      `json:"id"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	Status        Status     `json:"status"`
	CreatedAt     string     `json:"created_at"`
	Items         []SaleItem `json:"items"`
}

// SaleItem freezes the product name and unit price as observed at sale time.
// Later catalog renames or price changes never touch these rows.
type SaleItem struct {
	ID          int64   `json:"id"`
	SaleID      int64   `json:"sale_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// CartItem is one cart entry at checkout. Price is the unit price the cart
// displayed at add-time and is stored verbatim.
type CartItem struct {
	ProductID int64   `json:"id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,max=200"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	PaymentMethod string     `json:"payment_method" validate:"required,max=50"`
	Items         []CartItem `json:"items" validate:"required,min=1,dive"`
	Total         float64    `json:"total" validate:"gte=0"`
}

type CreateSaleResult struct {
	Success bool  `json:"success"`
	SaleID  int64 `json:"saleId"`
}

// HistoryRequest filters the sale history. The date window applies only when
// both bounds are present, inclusive of both days.
type HistoryRequest struct {
	Limit     int
	Offset    int
	StartDate string
	EndDate   string
}
