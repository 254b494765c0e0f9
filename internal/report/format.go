package report

import (
	"math"
	"sort"
	"time"

	"github.com/storewatch/storewatch-api/internal/models"
)

// Format turns the per-store aggregates into the final payload, sorted by
// store id. generatedAt is stamped at formatting time, not job creation.
func Format(aggregates map[string]*models.StoreAggregate, generatedAt time.Time) *models.ReportData {
	stores := make([]models.StoreReport, 0, len(aggregates))
	for _, agg := range aggregates {
		// A store with no in-hours observations reports full uptime.
		uptime := 100.0
		if agg.InHoursTotal > 0 {
			uptime = float64(agg.InHoursActive) / float64(agg.InHoursTotal) * 100
		}
		// Round each field from the unrounded percentage so the pair always
		// sums to 100 within rounding tolerance.
		stores = append(stores, models.StoreReport{
			StoreID:            agg.StoreID,
			UptimePercentage:   round2(uptime),
			DowntimePercentage: round2(100 - uptime),
		})
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].StoreID < stores[j].StoreID
	})

	return &models.ReportData{
		GeneratedAt: generatedAt,
		StoreCount:  len(stores),
		Stores:      stores,
	}
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
