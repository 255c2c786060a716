package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const (
	ChannelEmail = "email"
	ChannelPhone = "phone"

	DefaultTTL  = 10 * time.Minute
	MaxAttempts = 5
)

// Sender entrega o código ao cliente (SMS, e-mail...).
type Sender interface {
	Send(ctx context.Context, channel, target, code string) error
}

type SendResult struct {
	Formatted        string `json:"formatted"`
	VerificationSent bool   `json:"verificationSent"`
	ExpiresIn        int    `json:"expiresInSeconds"`
}

// Service gera e confere códigos de 6 dígitos de uso único.
type Service struct {
	store   Store
	sender  Sender
	log     *zap.Logger
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

func NewService(store Store, sender Sender, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		sender:  sender,
		log:     log,
		ttl:     DefaultTTL,
		now:     time.Now,
		newCode: randomCode,
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// target normaliza o destino; inválido vira erro de negócio.
func target(channel, value string) (string, error) {
	var res validators.FieldResult
	switch channel {
	case ChannelEmail:
		res = validators.CheckEmail(value)
		if !res.IsValid {
			return "", httperr.ErrBusiness(httperr.CodeInvalidEmail)
		}
	case ChannelPhone:
		res = validators.CheckPhone(value)
		if !res.IsValid {
			return "", httperr.ErrBusiness(httperr.CodeInvalidPhone)
		}
	default:
		return "", httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	return res.Formatted, nil
}

func (s *Service) Send(ctx context.Context, channel, value string) (*SendResult, error) {
	to, err := target(channel, value)
	if err != nil {
		return nil, err
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("verification code: %w", err)
	}

	// reenviar substitui o código anterior e zera as tentativas
	if err := s.store.Save(ctx, channel+":"+to, Record{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}); err != nil {
		return nil, httperr.ErrRepository("save_verification_code", err)
	}

	sent := true
	if err := s.sender.Send(ctx, channel, to, code); err != nil {
		s.log.Warn("verification code not delivered",
			zap.String("channel", channel),
			zap.Error(err),
		)
		sent = false
	}

	return &SendResult{
		Formatted:        to,
		VerificationSent: sent,
		ExpiresIn:        int(s.ttl / time.Second),
	}, nil
}

// Verify confere o código. Acertar consome o código; errar MaxAttempts
// vezes também, e o cliente precisa pedir outro.
func (s *Service) Verify(ctx context.Context, channel, value, code string) (bool, error) {
	to, err := target(channel, value)
	if err != nil {
		return false, err
	}
	key := channel + ":" + to

	rec, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, httperr.ErrRepository("get_verification_code", err)
	}
	if !found || rec.expired(s.now()) {
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) == 1 {
		if err := s.store.Delete(ctx, key); err != nil {
			return false, httperr.ErrRepository("delete_verification_code", err)
		}
		return true, nil
	}

	rec.Attempts++
	if rec.Attempts >= MaxAttempts {
		err = s.store.Delete(ctx, key)
	} else {
		err = s.store.Save(ctx, key, *rec)
	}
	if err != nil {
		return false, httperr.ErrRepository("update_verification_code", err)
	}
	return false, nil
}
