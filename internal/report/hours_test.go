package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/storewatch/storewatch-api/internal/models"
)

// 2023-01-23 is a Monday.
var monday = time.Date(2023, 1, 23, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, minute int) time.Time {
	return time.Date(2023, 1, 23, hour, minute, 0, 0, time.UTC)
}

func TestIsOpen_NoIntervalsAlwaysOpen(t *testing.T) {
	ix := NewHoursIndex(nil)

	rng := rand.New(rand.NewSource(1))
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		ts := base.Add(time.Duration(rng.Int63n(int64(365 * 24 * time.Hour))))
		if !ix.IsOpen("S1", ts) {
			t.Fatalf("store without intervals should always be open, closed at %v", ts)
		}
	}
}

func TestIsOpen_InclusiveBoundaries(t *testing.T) {
	ix := NewHoursIndex([]models.BusinessInterval{
		{StoreID: "S1", DayOfWeek: 0, StartMinutes: 9 * 60, EndMinutes: 17 * 60},
	})

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"ExactlyAtOpen", mondayAt(9, 0), true},
		{"ExactlyAtClose", mondayAt(17, 0), true},
		{"MinuteBeforeOpen", mondayAt(8, 59), false},
		{"MinuteAfterClose", mondayAt(17, 1), false},
		{"MidInterval", mondayAt(12, 30), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.IsOpen("S1", tt.ts); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestIsOpen_MondayZeroConvention(t *testing.T) {
	// Open only on day 0, which the dataset defines as Monday.
	ix := NewHoursIndex([]models.BusinessInterval{
		{StoreID: "S1", DayOfWeek: 0, StartMinutes: 0, EndMinutes: 24*60 - 1},
	})

	if !ix.IsOpen("S1", mondayAt(12, 0)) {
		t.Error("expected open on Monday for day-0 interval")
	}
	sunday := monday.AddDate(0, 0, -1)
	if ix.IsOpen("S1", sunday.Add(12*time.Hour)) {
		t.Error("expected closed on Sunday for day-0 interval")
	}
}

func TestIsOpen_MultipleIntervalsSameDay(t *testing.T) {
	ix := NewHoursIndex([]models.BusinessInterval{
		{StoreID: "S1", DayOfWeek: 0, StartMinutes: 9 * 60, EndMinutes: 12 * 60},
		{StoreID: "S1", DayOfWeek: 0, StartMinutes: 14 * 60, EndMinutes: 18 * 60},
	})

	if !ix.IsOpen("S1", mondayAt(10, 0)) {
		t.Error("expected open during morning interval")
	}
	if ix.IsOpen("S1", mondayAt(13, 0)) {
		t.Error("expected closed during midday gap")
	}
	if !ix.IsOpen("S1", mondayAt(15, 0)) {
		t.Error("expected open during afternoon interval")
	}
}

func TestIsOpen_IntervalsScopedPerStore(t *testing.T) {
	ix := NewHoursIndex([]models.BusinessInterval{
		{StoreID: "S1", DayOfWeek: 0, StartMinutes: 9 * 60, EndMinutes: 17 * 60},
	})

	// S2 declared nothing, so it is open even when S1 is closed.
	if !ix.IsOpen("S2", mondayAt(3, 0)) {
		t.Error("expected undeclared store to be open")
	}
	if ix.IsOpen("S1", mondayAt(3, 0)) {
		t.Error("expected declared store to be closed at 3am")
	}
}
