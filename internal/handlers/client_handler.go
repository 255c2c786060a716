package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// ======================================================
// LIST CLIENTS (BARBEIRO)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("list_clients", err))
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		Count(&count).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("count_clients", err))
		return
	}
	if count > 0 {
		httperr.Conflict(c, "client_already_exists", "Já existe cliente com esse telefone.")
		return
	}

	client := models.Client{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        phone,
		Email:        validators.NormalizeEmail(req.Email),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("create_client", err))
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// DELETE CLIENT (sem histórico)
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	log := middleware.Logger(c)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var client models.Client
	if err := db.Where("id = ? AND barbershop_id = ?", id, barbershopID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.FromError(c, log, httperr.ErrRepository("get_client", err))
		return
	}

	var appointments int64
	if err := db.Model(&models.Appointment{}).Where("client_id = ?", client.ID).Count(&appointments).Error; err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("count_appointments", err))
		return
	}
	if appointments > 0 {
		httperr.Conflict(c, "client_has_appointments", "Cliente possui agendamentos.")
		return
	}

	if err := db.Delete(&client).Error; err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("delete_client", err))
		return
	}

	c.Status(http.StatusNoContent)
}
