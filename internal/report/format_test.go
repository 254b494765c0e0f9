package report

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/storewatch/storewatch-api/internal/models"
)

func TestFormat_Percentages(t *testing.T) {
	now := time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)
	aggs := map[string]*models.StoreAggregate{
		"S1": {StoreID: "S1", InHoursTotal: 2, InHoursActive: 1},
		"S2": {StoreID: "S2", InHoursTotal: 3, InHoursActive: 1},
		"S3": {StoreID: "S3", InHoursTotal: 0, InHoursActive: 0},
	}

	data := Format(aggs, now)

	if !data.GeneratedAt.Equal(now) {
		t.Errorf("expected generated_at %v, got %v", now, data.GeneratedAt)
	}
	if data.StoreCount != 3 || len(data.Stores) != 3 {
		t.Fatalf("expected 3 stores, got count=%d len=%d", data.StoreCount, len(data.Stores))
	}

	byID := make(map[string]models.StoreReport)
	for _, s := range data.Stores {
		byID[s.StoreID] = s
	}

	if s := byID["S1"]; s.UptimePercentage != 50.00 || s.DowntimePercentage != 50.00 {
		t.Errorf("S1: expected 50/50, got %v/%v", s.UptimePercentage, s.DowntimePercentage)
	}
	// 1/3 rounds to 33.33 up, 66.67 down; both rounded from the unrounded value.
	if s := byID["S2"]; s.UptimePercentage != 33.33 || s.DowntimePercentage != 66.67 {
		t.Errorf("S2: expected 33.33/66.67, got %v/%v", s.UptimePercentage, s.DowntimePercentage)
	}
	// No in-hours observations means full uptime.
	if s := byID["S3"]; s.UptimePercentage != 100.00 || s.DowntimePercentage != 0.00 {
		t.Errorf("S3: expected 100/0, got %v/%v", s.UptimePercentage, s.DowntimePercentage)
	}
}

func TestFormat_PercentagesSumTo100(t *testing.T) {
	aggs := make(map[string]*models.StoreAggregate)
	for i, counts := range [][2]int{{7, 3}, {13, 11}, {1, 0}, {99, 98}, {6, 1}} {
		id := string(rune('A' + i))
		aggs[id] = &models.StoreAggregate{StoreID: id, InHoursTotal: counts[0], InHoursActive: counts[1]}
	}

	data := Format(aggs, time.Now().UTC())
	for _, s := range data.Stores {
		sum := s.UptimePercentage + s.DowntimePercentage
		if math.Abs(sum-100.00) > 0.01 {
			t.Errorf("store %s: uptime+downtime = %v, want 100.00", s.StoreID, sum)
		}
	}
}

func TestFormat_SortedByStoreID(t *testing.T) {
	aggs := map[string]*models.StoreAggregate{
		"store-9":  {StoreID: "store-9", InHoursTotal: 1, InHoursActive: 1},
		"store-1":  {StoreID: "store-1", InHoursTotal: 1, InHoursActive: 1},
		"store-10": {StoreID: "store-10", InHoursTotal: 1, InHoursActive: 0},
		"alpha":    {StoreID: "alpha", InHoursTotal: 2, InHoursActive: 2},
	}

	data := Format(aggs, time.Now().UTC())

	sorted := sort.SliceIsSorted(data.Stores, func(i, j int) bool {
		return data.Stores[i].StoreID < data.Stores[j].StoreID
	})
	if !sorted {
		ids := make([]string, 0, len(data.Stores))
		for _, s := range data.Stores {
			ids = append(ids, s.StoreID)
		}
		t.Errorf("stores not sorted by store_id: %v", ids)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{100.0 / 3, 33.33},
		{200.0 / 3, 66.67},
		{50, 50},
		{100, 100},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
