package report

import (
	"time"

	"github.com/pkg/errors"
)

// TimezoneResolver maps stores to their IANA timezone, falling back to the
// configured default for stores with no timezone row.
type TimezoneResolver struct {
	zones    map[string]string
	fallback string

	// LoadLocation parses the tz database on every call; cache per name.
	locations map[string]*time.Location
}

func NewTimezoneResolver(zones map[string]string, fallback string) *TimezoneResolver {
	return &TimezoneResolver{
		zones:     zones,
		fallback:  fallback,
		locations: make(map[string]*time.Location),
	}
}

// Resolve returns the timezone name for storeID. Never fails; unknown stores
// get the fallback.
func (r *TimezoneResolver) Resolve(storeID string) string {
	if tz, ok := r.zones[storeID]; ok {
		return tz
	}
	return r.fallback
}

// Location returns the store's *time.Location. An unloadable timezone name
// in the dataset is a data error and aborts the run.
func (r *TimezoneResolver) Location(storeID string) (*time.Location, error) {
	name := r.Resolve(storeID)
	if loc, ok := r.locations[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q for store %s", name, storeID)
	}
	r.locations[name] = loc
	return loc, nil
}
