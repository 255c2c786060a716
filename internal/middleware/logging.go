package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextLogger = "logger"

// RequestLogger guarda no contexto um logger com o request id
// e registra cada requisição ao final.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		log := base.With(zap.String("request_id", GetRequestID(c)))
		c.Set(ContextLogger, log)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Logger devolve o logger da requisição (ou um Nop fora do pipeline).
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
