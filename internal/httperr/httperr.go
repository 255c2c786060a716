package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

var statusByCode = map[string]int{
	CodeInvalidRequest:      http.StatusBadRequest,
	CodeInvalidDateOrTime:   http.StatusBadRequest,
	CodeTooSoon:             http.StatusBadRequest,
	CodeOutsideWorkingHours: http.StatusBadRequest,
	CodeTooLateToCancel:     http.StatusBadRequest,
	CodeInvalidState:        http.StatusBadRequest,
	CodeInvalidPhone:        http.StatusBadRequest,
	CodeInvalidEmail:        http.StatusBadRequest,
	CodeServiceNotFound:     http.StatusNotFound,
	CodeStaffNotFound:       http.StatusNotFound,
	CodeBarbershopNotFound:  http.StatusNotFound,
	CodeAppointmentNotFound: http.StatusNotFound,
	CodeSlotConflict:        http.StatusConflict,
}

var messageByCode = map[string]string{
	CodeInvalidRequest:      "Dados inválidos.",
	CodeInvalidDateOrTime:   "Data ou hora inválida.",
	CodeTooSoon:             "Horário inválido.",
	CodeOutsideWorkingHours: "Fora do horário de atendimento.",
	CodeTooLateToCancel:     "Cancelamento só é permitido com 2 horas de antecedência.",
	CodeInvalidState:        "Agendamento não pode ser alterado.",
	CodeInvalidPhone:        "Telefone inválido.",
	CodeInvalidEmail:        "E-mail inválido.",
	CodeServiceNotFound:     "Serviço não encontrado.",
	CodeStaffNotFound:       "Profissional não encontrado.",
	CodeBarbershopNotFound:  "Barbearia não encontrada.",
	CodeAppointmentNotFound: "Agendamento não encontrado.",
	CodeSlotConflict:        "Conflito de horário.",
}

// StatusFor devolve o status HTTP de um código de negócio.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// FromError traduz erros de use case em resposta HTTP.
// Erros de negócio viram 4xx; o resto é 5xx e vai para o log.
func FromError(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Code), be.Code, messageByCode[be.Code])
		return
	}

	if log != nil {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	Internal(c, CodeRepository, "Algo deu errado, tente novamente.")
}
