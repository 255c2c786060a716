package availability

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClock = errors.New("invalid_clock")

// Clock é um horário do dia em minutos desde a meia-noite.
// Valores fora de [0, 1440) são aceitos para intervalos que cruzam o dia.
type Clock int

const minutesPerDay = 24 * 60

// ParseClock converte "HH:MM" em Clock.
func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, hm)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// ClockOf devolve o horário de parede de t no timezone de day.
// Em dias de horário de verão o relógio pula, então não dá para
// contar minutos desde a meia-noite.
func ClockOf(day time.Time, t time.Time) Clock {
	t = t.In(day.Location())
	c := Clock(t.Hour()*60 + t.Minute())

	// intervalos que cruzam a meia-noite
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return c + Clock(to.Sub(from)/time.Minute)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	m := int(c) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// On posiciona o horário de parede no dia de date.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, date.Location())
}

func Format(cs []Clock) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}
