package onboarding

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Slugify: "Barbearia do João" -> "barbearia-do-joao".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// UniqueSlug devolve base, base-1, base-2... o primeiro livre.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	if base == "" {
		base = "barbearia"
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

// DefaultWorkingHours: seg–sáb 09:00–18:00, domingo fechado.
func DefaultWorkingHours(barbershopID uint) []models.WorkingHours {
	out := make([]models.WorkingHours, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		wh := models.WorkingHours{
			BarbershopID: barbershopID,
			Weekday:      weekday,
		}
		if weekday != 0 {
			wh.Active = true
			wh.StartTime = "09:00"
			wh.EndTime = "18:00"
		}
		out = append(out, wh)
	}
	return out
}
