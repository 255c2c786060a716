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
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1,max=600"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=1,max=600"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// List: ?category=corte&active=true&query=barba
func (h *ServiceHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("list_services", err))
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	service := models.Service{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       true,
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("create_service", err))
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("update_service", err))
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete só desativa: agendamentos antigos continuam apontando para o serviço.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Update("active", false).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("deactivate_service", err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeServiceNotFound))
			return nil, false
		}
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("get_service", err))
		return nil, false
	}
	return &service, true
}
