package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsAllowHeaders = strings.Join([]string{
	"Content-Type",
	"Authorization",
	IdempotencyHeader,
	RequestIDHeader,
}, ", ")

// CORSMiddleware libera as origens informadas; lista vazia libera qualquer
// origem (página pública de agendamento embutida em sites de terceiros).
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	allow := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allow[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && (len(allow) == 0 || allow[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Expose-Headers", RequestIDHeader+", Idempotent-Replayed")
		}

		// 🔑 PRE-FLIGHT
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
