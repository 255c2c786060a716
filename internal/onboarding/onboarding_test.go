package onboarding

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Barbearia do João":    "barbearia-do-joao",
		"  Corte & Navalha!! ": "corte-navalha",
		"ÁGUA--viva 2":         "agua-viva-2",
		"!!!":                  "",
	}

	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	existing := map[string]bool{"navalha": true, "navalha-1": true}

	got, err := UniqueSlug("navalha", func(s string) (bool, error) {
		return existing[s], nil
	})
	if err != nil || got != "navalha-2" {
		t.Fatalf("expected navalha-2, got %q (%v)", got, err)
	}

	got, _ = UniqueSlug("", func(string) (bool, error) { return false, nil })
	if got != "barbearia" {
		t.Fatalf("expected fallback slug, got %q", got)
	}

	boom := errors.New("db down")
	if _, err := UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours(7)
	if len(hours) != 7 {
		t.Fatalf("expected 7 days, got %d", len(hours))
	}
	if hours[0].Active {
		t.Fatal("sunday must be closed")
	}
	for _, wh := range hours[1:] {
		if !wh.Active || wh.StartTime != "09:00" || wh.EndTime != "18:00" || wh.BarbershopID != 7 {
			t.Fatalf("unexpected day %+v", wh)
		}
	}
}
