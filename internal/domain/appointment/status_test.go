package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		code string
	}{
		{StatusScheduled, StatusConfirmed, ""},
		{StatusScheduled, StatusCancelled, ""},
		{StatusConfirmed, StatusCompleted, ""},
		{StatusConfirmed, StatusNoShow, ""},
		{StatusConfirmed, StatusConfirmed, httperr.CodeInvalidState},
		{StatusCancelled, StatusCompleted, httperr.CodeInvalidState},
		{StatusCompleted, StatusCancelled, httperr.CodeInvalidState},
		{StatusNoShow, StatusScheduled, httperr.CodeInvalidState},
		{StatusScheduled, Status("archived"), httperr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestTransition_StampsTimes(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatal("expected CancelledAt to be set")
	}

	ap = &models.Appointment{Status: string(StatusConfirmed)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if ap.CompletedAt == nil || ap.Status != string(StatusCompleted) {
		t.Fatal("expected completed appointment")
	}
}

func TestResolveWorkingDay(t *testing.T) {
	day, err := ResolveWorkingDay(&models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Lunch == nil || day.Lunch.Duration != 60 {
		t.Fatalf("expected 60 minute lunch, got %+v", day.Lunch)
	}

	closed, err := ResolveWorkingDay(&models.WorkingHours{Active: false, StartTime: "garbage"})
	if err != nil || closed.Window.Working {
		t.Fatalf("inactive day must be closed without error, got %+v %v", closed, err)
	}

	if _, err := ResolveWorkingDay(&models.WorkingHours{Active: true, StartTime: "18:00", EndTime: "09:00"}); err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestWorkingDay_BlockedIgnoresInactive(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	at := func(h, m int) time.Time { return time.Date(2026, 3, 10, h, m, 0, 0, loc) }

	day := WorkingDay{}
	blocked := day.Blocked(date, []models.Appointment{
		{StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusScheduled)},
		{StartTime: at(11, 0), EndTime: at(11, 30), Status: string(StatusCancelled)},
		{StartTime: at(12, 0), EndTime: at(12, 45), Status: string(StatusConfirmed)},
		{StartTime: at(13, 0), EndTime: at(13, 30), Status: string(StatusNoShow)},
	})

	if len(blocked) != 2 {
		t.Fatalf("expected 2 blocked intervals, got %+v", blocked)
	}
	if blocked[1].Start.String() != "12:00" || blocked[1].Duration != 45 {
		t.Fatalf("unexpected interval %+v", blocked[1])
	}
}
