package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// WorkingDay é o expediente resolvido para uma data, com o almoço
// já convertido em intervalo bloqueado.
type WorkingDay struct {
	Window availability.Window
	Lunch  *availability.Interval
}

// ResolveWorkingDay converte o registro salvo. nil ou inativo = fechado.
func ResolveWorkingDay(wh *models.WorkingHours) (WorkingDay, error) {
	if wh == nil || !wh.Active {
		return WorkingDay{}, nil
	}

	w, err := availability.ParseWindow(wh.StartTime, wh.EndTime, true)
	if err != nil {
		return WorkingDay{}, err
	}

	day := WorkingDay{Window: w}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, err := availability.ParseClock(wh.LunchStart)
		if err != nil {
			return WorkingDay{}, err
		}
		le, err := availability.ParseClock(wh.LunchEnd)
		if err != nil {
			return WorkingDay{}, err
		}
		if le > ls {
			day.Lunch = &availability.Interval{Start: ls, Duration: int(le - ls)}
		}
	}

	return day, nil
}

// Blocked junta agendamentos ativos do dia e almoço em intervalos.
func (d WorkingDay) Blocked(date time.Time, appointments []models.Appointment) []availability.Interval {
	blocked := make([]availability.Interval, 0, len(appointments)+1)
	for _, ap := range appointments {
		if !Status(ap.Status).IsActive() {
			continue
		}
		start := availability.ClockOf(date, ap.StartTime.In(date.Location()))
		blocked = append(blocked, availability.Interval{
			Start:    start,
			Duration: int(ap.EndTime.Sub(ap.StartTime) / time.Minute),
		})
	}
	if d.Lunch != nil {
		blocked = append(blocked, *d.Lunch)
	}
	return blocked
}

// DayRange devolve [00:00, 00:00 do dia seguinte) de date no seu timezone.
func DayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
