package timezone

import (
	"sync"
	"time"
	_ "time/tzdata" // fusos das barbearias mesmo em imagens sem /usr/share/zoneinfo
)

const DefaultTimezone = "America/Sao_Paulo"

// LoadLocation lê o tzdata do disco; a agenda consulta o fuso da
// barbearia em toda requisição, então guardamos o resultado.
var cache sync.Map // string -> *time.Location

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}

func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location devolve o fuso da barbearia; inválido ou vazio cai no padrão.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	if loc, ok := load(DefaultTimezone); ok {
		return loc
	}
	return time.UTC
}

// ParseDate interpreta "2006-01-02" como meia-noite no fuso tz.
func ParseDate(date string, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}
