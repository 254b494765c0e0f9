package models

import "time"

// StorePoll is a single active/inactive observation for one store.
type StorePoll struct {
	StoreID      string
	TimestampUTC time.Time
	IsActive     bool
}

// BusinessInterval is one declared open range for a store on one weekday,
// in store-local time. DayOfWeek uses the dataset convention: 0=Monday,
// 6=Sunday. Start and end are minutes since local midnight, inclusive on
// both ends.
type BusinessInterval struct {
	StoreID      string
	DayOfWeek    int
	StartMinutes int
	EndMinutes   int
}

// TimezoneEntry maps a store to its IANA timezone name.
type TimezoneEntry struct {
	StoreID  string
	Timezone string
}

// StoreAggregate holds the running counters for one store during a single
// report run.
type StoreAggregate struct {
	StoreID       string
	InHoursTotal  int
	InHoursActive int
}
