package availability

import "errors"

var ErrInvalidWindow = errors.New("invalid_working_window")

// Window é o expediente de um dia da semana.
type Window struct {
	Start   Clock
	End     Clock
	Working bool
}

// ParseWindow valida o expediente. Dia fechado não avalia os horários.
func ParseWindow(start, end string, working bool) (Window, error) {
	if !working {
		return Window{}, nil
	}

	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}

	// start == end é permitido e resulta em zero slots
	if e < s {
		return Window{}, ErrInvalidWindow
	}

	return Window{Start: s, End: e, Working: true}, nil
}

// Fits informa se [start, start+duration) cabe inteiro no expediente.
func (w Window) Fits(start Clock, duration int) bool {
	if !w.Working || duration <= 0 {
		return false
	}
	return start >= w.Start && start.Add(duration) <= w.End
}

// Interval é um período ocupado [Start, Start+Duration).
type Interval struct {
	Start    Clock
	Duration int
}

func (i Interval) End() Clock {
	return i.Start.Add(i.Duration)
}

// Overlaps usa semântica semiaberta: encostar não conflita.
func Overlaps(start, end Clock, b Interval) bool {
	return start < b.End() && end > b.Start
}
