package availability

import "time"

// Granularity é o passo fixo da grade de horários, em minutos.
const Granularity = 30

// Grid gera os candidatos do expediente a cada step minutos.
// Um candidato ainda não garante que o serviço cabe antes do fechamento.
func Grid(w Window, step int) []Clock {
	if !w.Working || step <= 0 || w.End <= w.Start {
		return []Clock{}
	}

	grid := make([]Clock, 0, int(w.End-w.Start)/step)
	for cur := w.Start; cur.Add(step) <= w.End; cur = cur.Add(step) {
		grid = append(grid, cur)
	}
	return grid
}

// Filter mantém, na ordem original, os candidatos em que o serviço
// termina até closing e não sobrepõe nenhum intervalo ocupado.
func Filter(grid []Clock, duration int, booked []Interval, closing Clock) []Clock {
	out := make([]Clock, 0, len(grid))
	if duration <= 0 {
		return out
	}

	for _, slot := range grid {
		end := slot.Add(duration)
		if end > closing {
			continue
		}

		conflict := false
		for _, b := range booked {
			if Overlaps(slot, end, b) {
				conflict = true
				break
			}
		}

		if !conflict {
			out = append(out, slot)
		}
	}
	return out
}

// Slots combina Grid e Filter com a granularidade padrão.
func Slots(w Window, duration int, booked []Interval) []Clock {
	if !w.Working {
		return []Clock{}
	}
	return Filter(Grid(w, Granularity), duration, booked, w.End)
}

// DropBefore remove os slots de date que começam antes de cutoff.
// É política da API de agendamento, não do filtro.
func DropBefore(slots []Clock, date time.Time, cutoff time.Time) []Clock {
	out := make([]Clock, 0, len(slots))
	for _, s := range slots {
		if s.On(date).Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out
}
