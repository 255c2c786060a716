package verification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender só registra o envio. Sem provedor de SMS/e-mail configurado
// é o que roda; o código aparece no log apenas fora de produção.
type LogSender struct {
	log        *zap.Logger
	exposeCode bool
}

func NewLogSender(log *zap.Logger, exposeCode bool) *LogSender {
	return &LogSender{log: log, exposeCode: exposeCode}
}

func (s *LogSender) Send(_ context.Context, channel, target, code string) error {
	fields := []zap.Field{
		zap.String("channel", channel),
		zap.String("target", mask(target)),
	}
	if s.exposeCode {
		fields = append(fields, zap.String("code", code))
	}
	s.log.Info("verification code issued", fields...)
	return nil
}

// mask mantém só os 4 últimos caracteres.
func mask(v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return "****"
	}
	for i := 0; i < len(r)-4; i++ {
		r[i] = '*'
	}
	return string(r)
}
