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

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=barber owner"`
}

type UpdateStaffRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// List inclui inativos; o painel precisa reativar.
func (h *StaffHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var staff []models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("list_staff", err))
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = "barber"
	}

	staff := models.Staff{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Email:        validators.NormalizeEmail(req.Email),
		Phone:        validators.NormalizePhone(req.Phone),
		Role:         role,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&staff).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("create_staff", err))
		return
	}

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&staff).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeStaffNotFound))
			return
		}
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("get_staff", err))
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.Name != nil {
		staff.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		staff.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		staff.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&staff).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("update_staff", err))
		return
	}

	c.JSON(http.StatusOK, staff)
}
