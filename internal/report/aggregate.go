package report

import (
	"github.com/storewatch/storewatch-api/internal/models"
)

// Aggregator folds status polls into per-store in-hours counters. It is a
// single-pass fold: polls are classified and dropped, only the counters
// survive, so memory scales with store count rather than poll count.
type Aggregator struct {
	tz         *TimezoneResolver
	hours      *HoursIndex
	aggregates map[string]*models.StoreAggregate
}

func NewAggregator(tz *TimezoneResolver, hours *HoursIndex) *Aggregator {
	return &Aggregator{
		tz:         tz,
		hours:      hours,
		aggregates: make(map[string]*models.StoreAggregate),
	}
}

// Add classifies one poll. Every poll registers its store, even when the
// observation lands outside business hours; out-of-hours polls count toward
// neither metric.
func (a *Aggregator) Add(poll models.StorePoll) error {
	agg, ok := a.aggregates[poll.StoreID]
	if !ok {
		agg = &models.StoreAggregate{StoreID: poll.StoreID}
		a.aggregates[poll.StoreID] = agg
	}

	loc, err := a.tz.Location(poll.StoreID)
	if err != nil {
		return err
	}
	local := poll.TimestampUTC.In(loc)

	if !a.hours.IsOpen(poll.StoreID, local) {
		return nil
	}
	agg.InHoursTotal++
	if poll.IsActive {
		agg.InHoursActive++
	}
	return nil
}

// Aggregates returns the accumulated per-store counters.
func (a *Aggregator) Aggregates() map[string]*models.StoreAggregate {
	return a.aggregates
}
