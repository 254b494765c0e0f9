package report

import (
	"time"

	"github.com/storewatch/storewatch-api/internal/models"
)

// HoursIndex answers whether a store-local timestamp falls inside the
// store's declared business hours. Stores without any declared interval are
// treated as open 24/7.
type HoursIndex struct {
	intervals map[string][]models.BusinessInterval
}

func NewHoursIndex(intervals []models.BusinessInterval) *HoursIndex {
	byStore := make(map[string][]models.BusinessInterval)
	for _, iv := range intervals {
		byStore[iv.StoreID] = append(byStore[iv.StoreID], iv)
	}
	return &HoursIndex{intervals: byStore}
}

// IsOpen reports whether local falls inside business hours for storeID.
// Interval bounds are inclusive on both ends, so a poll exactly at open or
// close counts as in-hours.
func (ix *HoursIndex) IsOpen(storeID string, local time.Time) bool {
	intervals := ix.intervals[storeID]
	if len(intervals) == 0 {
		return true
	}

	// Dataset convention is 0=Monday; time.Weekday starts at Sunday.
	day := (int(local.Weekday()) + 6) % 7
	minutes := local.Hour()*60 + local.Minute()

	for _, iv := range intervals {
		if iv.DayOfWeek == day && minutes >= iv.StartMinutes && minutes <= iv.EndMinutes {
			return true
		}
	}
	return false
}

// StoreCount returns how many stores declared at least one interval.
func (ix *HoursIndex) StoreCount() int {
	return len(ix.intervals)
}
