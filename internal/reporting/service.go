package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

const defaultTopProductsLimit = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard computes the KPI aggregates over the inclusive window. All four
// figures come from independent scalar queries over the same filter; the
// average ticket is zero when no completed sale falls in the window.
func (s *Service) Dashboard(ctx context.Context, startDate, endDate string) (DashboardStats, error) {
	if _, _, err := parseWindow(startDate, endDate); err != nil {
		return DashboardStats{}, err
	}
	winStart, winEnd := windowBounds(startDate, endDate)

	income, count, err := s.repo.CompletedTotals(ctx, winStart, winEnd)
	if err != nil {
		return DashboardStats{}, err
	}
	cancelledAmount, cancelledCount, err := s.repo.CancelledTotals(ctx, winStart, winEnd)
	if err != nil {
		return DashboardStats{}, err
	}

	var average float64
	if count > 0 {
		average = income / float64(count)
	}

	return DashboardStats{
		TotalIncome:     income,
		TotalSales:      count,
		AverageTicket:   average,
		CancelledCount:  cancelledCount,
		CancelledAmount: cancelledAmount,
	}, nil
}

// TopProducts ranks products of completed sales by quantity sold.
func (s *Service) TopProducts(ctx context.Context, startDate, endDate string, limit int) ([]TopProduct, error) {
	if _, _, err := parseWindow(startDate, endDate); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	winStart, winEnd := windowBounds(startDate, endDate)
	result, err := s.repo.TopProducts(ctx, winStart, winEnd, limit)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []TopProduct{}
	}
	return result, nil
}

// Chart produces the gap-filled, chronologically ordered sales series: pick a
// granularity from the window length, query the sparse actual totals, then
// walk every bucket boundary from start to end emitting zeroes for the gaps.
func (s *Service) Chart(ctx context.Context, startDate, endDate string) ([]ChartPoint, error) {
	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	g := granularityFor(start, end)

	winStart, winEnd := windowBounds(startDate, endDate)
	totals, err := s.repo.BucketTotals(ctx, g, winStart, winEnd)
	if err != nil {
		return nil, err
	}

	return fillBuckets(start, end, g, totals), nil
}

// parseWindow validates the YYYY-MM-DD pair and returns start-of-day and
// end-of-day local instants.
func parseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, httpx.ErrValidation)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, httpx.ErrValidation)
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date before start date: %w", httpx.ErrValidation)
	}
	return start, end, nil
}

func windowBounds(startDate, endDate string) (string, string) {
	return startDate + " 00:00:00", endDate + " 23:59:59"
}
