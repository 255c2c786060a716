package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type recordingSender struct {
	codes map[string]string
	err   error
}

func (s *recordingSender) Send(_ context.Context, channel, target, code string) error {
	if s.err != nil {
		return s.err
	}
	s.codes[channel+":"+target] = code
	return nil
}

type failingStore struct{ *MemoryStore }

func (failingStore) Save(context.Context, string, Record) error {
	return errors.New("redis down")
}

// newTestService usa um relógio fixo compartilhado entre serviço e store.
func newTestService(sender Sender) (*Service, *time.Time) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := NewMemoryStore()
	store.now = clock

	svc := NewService(store, sender, zap.NewNop())
	svc.now = clock
	return svc, &now
}

func TestService_SendAndVerify(t *testing.T) {
	sender := &recordingSender{codes: map[string]string{}}
	svc, _ := newTestService(sender)
	ctx := context.Background()

	res, err := svc.Send(ctx, ChannelPhone, "(11) 98765-4321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formatted != "+5511987654321" || !res.VerificationSent {
		t.Fatalf("unexpected result: %+v", res)
	}

	code := sender.codes["phone:+5511987654321"]
	if len(code) != 6 {
		t.Fatalf("expected 6 digit code, got %q", code)
	}

	// outro formato do mesmo número acha o mesmo código
	ok, err := svc.Verify(ctx, ChannelPhone, "+55 11 98765-4321", code)
	if err != nil || !ok {
		t.Fatalf("expected valid code, got %v %v", ok, err)
	}

	// uso único
	if ok, _ := svc.Verify(ctx, ChannelPhone, "+5511987654321", code); ok {
		t.Fatal("code must not be accepted twice")
	}
}

func TestService_WrongCodeAndAttempts(t *testing.T) {
	svc, _ := newTestService(&recordingSender{codes: map[string]string{}})
	svc.newCode = func() (string, error) { return "123456", nil }
	ctx := context.Background()

	if _, err := svc.Send(ctx, ChannelEmail, "Cliente@Gmail.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < MaxAttempts; i++ {
		if ok, err := svc.Verify(ctx, ChannelEmail, "cliente@gmail.com", "000000"); ok || err != nil {
			t.Fatalf("attempt %d: expected rejection, got %v %v", i, ok, err)
		}
	}

	if ok, _ := svc.Verify(ctx, ChannelEmail, "cliente@gmail.com", "123456"); ok {
		t.Fatal("code must be burned after too many attempts")
	}
}

func TestService_ExpiredCode(t *testing.T) {
	svc, now := newTestService(&recordingSender{codes: map[string]string{}})
	svc.newCode = func() (string, error) { return "654321", nil }
	ctx := context.Background()

	if _, err := svc.Send(ctx, ChannelEmail, "cliente@gmail.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*now = now.Add(DefaultTTL)
	if ok, _ := svc.Verify(ctx, ChannelEmail, "cliente@gmail.com", "654321"); ok {
		t.Fatal("expired code must be rejected")
	}
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&recordingSender{codes: map[string]string{}})

	if _, err := svc.Send(ctx, ChannelPhone, "telefone"); !httperr.IsBusiness(err, httperr.CodeInvalidPhone) {
		t.Fatalf("expected invalid_phone, got %v", err)
	}
	if _, err := svc.Send(ctx, ChannelEmail, "sem-arroba"); !httperr.IsBusiness(err, httperr.CodeInvalidEmail) {
		t.Fatalf("expected invalid_email, got %v", err)
	}
	if _, err := svc.Send(ctx, "fax", "123"); !httperr.IsBusiness(err, httperr.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request, got %v", err)
	}

	broken := NewService(failingStore{NewMemoryStore()}, &recordingSender{codes: map[string]string{}}, zap.NewNop())
	if _, err := broken.Send(ctx, ChannelEmail, "cliente@gmail.com"); !httperr.IsRepository(err) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestService_DeliveryFailureStillStoresCode(t *testing.T) {
	svc, _ := newTestService(&recordingSender{err: errors.New("sms provider down")})
	svc.newCode = func() (string, error) { return "111222", nil }
	ctx := context.Background()

	res, err := svc.Send(ctx, ChannelEmail, "cliente@gmail.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.VerificationSent {
		t.Fatal("expected verificationSent=false")
	}
}

func TestMask(t *testing.T) {
	if got := mask("+5511987654321"); got != "**********4321" {
		t.Fatalf("mask() = %q", got)
	}
	if got := mask("abc"); got != "****" {
		t.Fatalf("mask() = %q", got)
	}
}
