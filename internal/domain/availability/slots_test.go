package availability

import (
	"reflect"
	"testing"
	"time"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(start, end, true)
	if err != nil {
		t.Fatalf("ParseWindow(%s, %s) error: %v", start, end, err)
	}
	return w
}

func mustClock(t *testing.T, hm string) Clock {
	t.Helper()
	c, err := ParseClock(hm)
	if err != nil {
		t.Fatalf("ParseClock(%s) error: %v", hm, err)
	}
	return c
}

func contains(slots []string, hm string) bool {
	for _, s := range slots {
		if s == hm {
			return true
		}
	}
	return false
}

func TestSlots_FullDayNoBookings(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")

	slots := Format(Slots(w, 30, nil))
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "17:30" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestSlots_BookingBlocksOverlappingCandidates(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")
	booked := []Interval{{Start: mustClock(t, "10:00"), Duration: 45}}

	slots := Format(Slots(w, 45, booked))

	for _, absent := range []string{"09:30", "10:00", "10:30"} {
		if contains(slots, absent) {
			t.Fatalf("expected %s to be blocked, got %v", absent, slots)
		}
	}
	for _, present := range []string{"09:00", "11:00", "17:00"} {
		if !contains(slots, present) {
			t.Fatalf("expected %s to be available, got %v", present, slots)
		}
	}
	if contains(slots, "17:30") {
		t.Fatalf("17:30 + 45min runs past closing, got %v", slots)
	}
}

func TestSlots_ClosedDay(t *testing.T) {
	w, err := ParseWindow("not-a-time", "also-not", false)
	if err != nil {
		t.Fatalf("closed day must not evaluate times, got %v", err)
	}

	slots := Slots(w, 30, []Interval{{Start: 600, Duration: 30}})
	if len(slots) != 0 {
		t.Fatalf("expected no slots on closed day, got %v", slots)
	}
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")

	if slots := Slots(w, 600, nil); len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", Format(slots))
	}
}

func TestGrid_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{name: "empty window", start: "09:00", end: "09:00", want: []string{}},
		{name: "partial tick excluded", start: "09:00", end: "10:15", want: []string{"09:00", "09:30"}},
		{name: "exact fit", start: "09:00", end: "10:00", want: []string{"09:00", "09:30"}},
		{name: "shorter than step", start: "09:00", end: "09:20", want: []string{}},
		{name: "odd start", start: "09:10", end: "10:40", want: []string{"09:10", "09:40", "10:10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(Grid(mustWindow(t, tt.start, tt.end), Granularity))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Grid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrid_SortedWithoutDuplicates(t *testing.T) {
	for start := 0; start < minutesPerDay; start += 45 {
		for end := start; end <= minutesPerDay; end += 70 {
			grid := Grid(Window{Start: Clock(start), End: Clock(end), Working: true}, Granularity)
			for i := 1; i < len(grid); i++ {
				if grid[i] <= grid[i-1] {
					t.Fatalf("grid not strictly ascending for %d-%d: %v", start, end, grid)
				}
			}
			for _, c := range grid {
				if c.Add(Granularity) > Clock(end) {
					t.Fatalf("candidate %s exceeds window end %s", c, Clock(end))
				}
			}
		}
	}
}

func TestFilter_HalfOpenBoundaries(t *testing.T) {
	grid := []Clock{mustClock(t, "10:00")}
	closing := mustClock(t, "18:00")

	tests := []struct {
		name    string
		booking Interval
		keep    bool
	}{
		{name: "booking ends at slot start", booking: Interval{Start: mustClock(t, "09:30"), Duration: 30}, keep: true},
		{name: "booking starts at slot end", booking: Interval{Start: mustClock(t, "10:30"), Duration: 30}, keep: true},
		{name: "booking overlaps start", booking: Interval{Start: mustClock(t, "09:45"), Duration: 30}, keep: false},
		{name: "booking overlaps end", booking: Interval{Start: mustClock(t, "10:29"), Duration: 30}, keep: false},
		{name: "booking inside slot", booking: Interval{Start: mustClock(t, "10:10"), Duration: 5}, keep: false},
		{name: "booking covers slot", booking: Interval{Start: mustClock(t, "09:00"), Duration: 180}, keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(grid, 30, []Interval{tt.booking}, closing)
			if (len(got) == 1) != tt.keep {
				t.Fatalf("keep = %v, got %v", tt.keep, Format(got))
			}
		})
	}
}

func TestFilter_RejectsPastClosingAndBadDuration(t *testing.T) {
	grid := []Clock{mustClock(t, "17:00"), mustClock(t, "17:30")}
	closing := mustClock(t, "18:00")

	got := Format(Filter(grid, 60, nil, closing))
	if !reflect.DeepEqual(got, []string{"17:00"}) {
		t.Fatalf("expected only 17:00, got %v", got)
	}

	if got := Filter(grid, 0, nil, closing); len(got) != 0 {
		t.Fatalf("expected no slots for zero duration, got %v", got)
	}
	if got := Filter(grid, -15, nil, closing); len(got) != 0 {
		t.Fatalf("expected no slots for negative duration, got %v", got)
	}
}

func TestSlots_Idempotent(t *testing.T) {
	w := mustWindow(t, "08:00", "20:00")
	booked := []Interval{{Start: mustClock(t, "12:00"), Duration: 60}, {Start: mustClock(t, "15:15"), Duration: 20}}

	first := Format(Slots(w, 40, booked))
	second := Format(Slots(w, 40, booked))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
}

func TestParseWindow_Invalid(t *testing.T) {
	if _, err := ParseWindow("18:00", "09:00", true); err == nil {
		t.Fatal("expected error for inverted window")
	}
	if _, err := ParseWindow("25:00", "26:00", true); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestWindow_Fits(t *testing.T) {
	w := mustWindow(t, "09:00", "18:00")

	if !w.Fits(mustClock(t, "17:15"), 45) {
		t.Fatal("17:15 + 45 should fit")
	}
	if w.Fits(mustClock(t, "17:30"), 45) {
		t.Fatal("17:30 + 45 should not fit")
	}
	if w.Fits(mustClock(t, "08:45"), 30) {
		t.Fatal("08:45 should not fit")
	}
}

func TestDropBefore(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	slots := []Clock{mustClock(t, "09:00"), mustClock(t, "09:30"), mustClock(t, "10:00")}

	cutoff := time.Date(2026, 3, 10, 9, 15, 0, 0, loc)
	got := Format(DropBefore(slots, date, cutoff))
	if !reflect.DeepEqual(got, []string{"09:30", "10:00"}) {
		t.Fatalf("DropBefore() = %v", got)
	}
}

func TestClock_StringAndClockOf(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	c := ClockOf(day, time.Date(2026, 3, 10, 14, 5, 0, 0, loc))
	if c.String() != "14:05" {
		t.Fatalf("expected 14:05, got %s", c)
	}

	prev := ClockOf(day, time.Date(2026, 3, 9, 23, 30, 0, 0, loc))
	if prev != -30 {
		t.Fatalf("expected -30 for previous day, got %d", prev)
	}
}

func TestClock_WallTimeOnDSTDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2026-03-08: 02:00 vira 03:00
	day := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)

	if c := ClockOf(day, time.Date(2026, 3, 8, 10, 0, 0, 0, loc)); c.String() != "10:00" {
		t.Fatalf("expected 10:00, got %s", c)
	}
	if c := ClockOf(day, time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)); c.String() != "11:00" {
		t.Fatalf("expected 11:00 local, got %s", c)
	}

	on := mustClock(t, "17:30").On(day)
	if on.Hour() != 17 || on.Minute() != 30 {
		t.Fatalf("On() = %s", on)
	}

	cutoff := time.Date(2026, 3, 8, 10, 0, 0, 0, loc)
	got := Format(DropBefore([]Clock{mustClock(t, "09:30"), mustClock(t, "10:00")}, day, cutoff))
	if !reflect.DeepEqual(got, []string{"10:00"}) {
		t.Fatalf("DropBefore() = %v", got)
	}
}
