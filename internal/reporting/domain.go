package reporting

// DashboardStats carries the KPI card values for a date window. Field names
// follow the client contract.
type DashboardStats struct {
	TotalIncome     float64 `json:"totalIncome"`
	TotalSales      int64   `json:"totalSales"`
	AverageTicket   float64 `json:"averageTicket"`
	CancelledCount  int64   `json:"cancelledCount"`
	CancelledAmount float64 `json:"cancelledAmount"`
}

// TopProduct aggregates one product's movement inside a window. Name comes
// from the sale-item snapshot, never from the live catalog.
type TopProduct struct {
	Name    string  `json:"name"`
	Sold    int64   `json:"sold"`
	Revenue float64 `json:"revenue"`
}

// ChartPoint is one bucket of the gap-filled sales series. Date is the
// display label, OriginalDate the bucket key.
type ChartPoint struct {
	Date         string  `json:"date"`
	OriginalDate string  `json:"originalDate"`
	Total        float64 `json:"total"`
}
