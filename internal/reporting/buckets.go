package reporting

import (
	"fmt"
	"math"
	"time"
)

// Granularity selects the bucket step of the sales chart.
type Granularity int

const (
	GranularityHour Granularity = iota
	GranularityDay
	GranularityMonth
)

var spanishMonths = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// granularityFor picks the bucket step for an inclusive window: up to two
// days hourly, up to ninety days daily, monthly beyond that. diffDays rounds
// up, so a same-day window counts as one day.
func granularityFor(start, end time.Time) Granularity {
	diffDays := int(math.Ceil(end.Sub(start).Hours() / 24))
	switch {
	case diffDays <= 2:
		return GranularityHour
	case diffDays <= 90:
		return GranularityDay
	default:
		return GranularityMonth
	}
}

// SQLiteFormat returns the strftime layout producing this granularity's
// bucket key.
func (g Granularity) SQLiteFormat() string {
	switch g {
	case GranularityHour:
		return "%Y-%m-%d %H"
	case GranularityDay:
		return "%Y-%m-%d"
	default:
		return "%Y-%m"
	}
}

func (g Granularity) key(t time.Time) string {
	switch g {
	case GranularityHour:
		return t.Format("2006-01-02 15")
	case GranularityDay:
		return t.Format("2006-01-02")
	default:
		return t.Format("2006-01")
	}
}

func (g Granularity) label(t time.Time) string {
	switch g {
	case GranularityHour:
		return fmt.Sprintf("%02d:00", t.Hour())
	case GranularityDay:
		return t.Format("02/01")
	default:
		return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
	}
}

// next advances the cursor by one bucket on the wall clock. The hourly step
// is built from components rather than Add(time.Hour) so the repeated hour of
// a DST fall-back day yields a single bucket. The monthly step pins the cursor
// to the first of the following month so a walk starting on the 29th, 30th or
// 31st never overflows past a shorter month.
func (g Granularity) next(t time.Time) time.Time {
	switch g {
	case GranularityHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
	case GranularityDay:
		return t.AddDate(0, 0, 1)
	default:
		return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	}
}

// fillBuckets walks every bucket boundary from start to end inclusive and
// emits one point per boundary, substituting zero for buckets absent from the
// sparse totals.
func fillBuckets(start, end time.Time, g Granularity, totals map[string]float64) []ChartPoint {
	points := []ChartPoint{}
	for cur := start; !cur.After(end); cur = g.next(cur) {
		key := g.key(cur)
		points = append(points, ChartPoint{
			Date:         g.label(cur),
			OriginalDate: key,
			Total:        totals[key],
		})
	}
	return points
}
