package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
	"github.com/BruksfildServices01/barber-booking/internal/verification"
)

// ======================================================
// HANDLER
// ======================================================

type VerificationHandler struct {
	svc *verification.Service
}

func NewVerificationHandler(svc *verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type VerificationRequest struct {
	Type  string `json:"type" binding:"required,oneof=email phone"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (r VerificationRequest) target() string {
	if r.Type == verification.ChannelEmail {
		return r.Email
	}
	return r.Phone
}

// Send: POST /api/booking/verification/send
func (h *VerificationHandler) Send(c *gin.Context) {
	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	res, err := h.svc.Send(c.Request.Context(), req.Type, req.target())
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isValid":          true,
		"formatted":        res.Formatted,
		"verificationSent": res.VerificationSent,
		"expiresInSeconds": res.ExpiresIn,
	})
}

// Verify: POST /api/booking/verification/verify
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	ok, err := h.svc.Verify(c.Request.Context(), req.Type, req.target(), req.Code)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	msg := "Código inválido ou expirado."
	if ok {
		msg = "Verificação concluída."
	}
	c.JSON(http.StatusOK, gin.H{"isValid": ok, "message": msg})
}

// ------------------------------------------------------
// Validação dos campos do formulário
// ------------------------------------------------------

var fieldCheckers = map[string]func(string) validators.FieldResult{
	"name":  validators.CheckName,
	"email": validators.CheckEmail,
	"phone": validators.CheckPhone,
}

type FieldValidationRequest struct {
	Type  string `json:"type" binding:"required,oneof=name email phone"`
	Value string `json:"value" binding:"required"`
}

// ValidateField: POST /api/booking/validation
func (h *VerificationHandler) ValidateField(c *gin.Context) {
	var req FieldValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	res := fieldCheckers[req.Type](req.Value)
	c.JSON(http.StatusOK, gin.H{
		"isValid":   res.IsValid,
		"error":     res.Error,
		"formatted": res.Formatted,
		"type":      req.Type,
	})
}

type CustomerValidationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ValidateCustomer: PUT /api/booking/validation (formulário inteiro)
func (h *VerificationHandler) ValidateCustomer(c *gin.Context) {
	var req CustomerValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	results := map[string]validators.FieldResult{
		"name":  validators.CheckName(req.Name),
		"email": validators.CheckEmail(req.Email),
		"phone": validators.CheckPhone(req.Phone),
	}

	valid := true
	for _, r := range results {
		valid = valid && r.IsValid
	}

	c.JSON(http.StatusOK, gin.H{"isValid": valid, "results": results})
}
