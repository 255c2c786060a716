package validators

import "testing"

func TestCheckName(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"João da Silva", true},
		{"Ana", true},
		{"A", false},
		{"Jo4o", false},
		{"Aaaaa", false},
		{"teste", false},
	}
	for _, tt := range tests {
		if got := CheckName(tt.in); got.IsValid != tt.ok {
			t.Errorf("CheckName(%q) = %+v, want valid=%v", tt.in, got, tt.ok)
		}
	}
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{" Cliente@Gmail.com ", true},
		{"sem-arroba", false},
		{"x@mailinator.com", false},
		{"x@gmail.con", false},
		{"test@test.com", false},
	}
	for _, tt := range tests {
		if got := CheckEmail(tt.in); got.IsValid != tt.ok {
			t.Errorf("CheckEmail(%q) = %+v, want valid=%v", tt.in, got, tt.ok)
		}
	}

	if got := CheckEmail(" Cliente@Gmail.com "); got.Formatted != "cliente@gmail.com" {
		t.Fatalf("expected normalized email, got %q", got.Formatted)
	}
}

func TestCheckPhone(t *testing.T) {
	tests := []struct {
		in        string
		formatted string
	}{
		{"(11) 98765-4321", "+5511987654321"},
		{"+351 912 345 678", "+351912345678"},
		{"", ""},
		{"telefone", ""},
		{"(11) 99999-9999", ""},
	}
	for _, tt := range tests {
		got := CheckPhone(tt.in)
		if got.IsValid != (tt.formatted != "") || got.Formatted != tt.formatted {
			t.Errorf("CheckPhone(%q) = %+v, want %q", tt.in, got, tt.formatted)
		}
	}
}
