package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List: ?action=&entity=&request_id=&from=2026-03-01&to=2026-03-31&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	log := middleware.Logger(c)

	page, limit, offset := httpresp.Pagination(c)

	db := h.db.WithContext(c.Request.Context())

	var shop models.Barbershop
	if err := db.Select("id", "timezone").First(&shop, barbershopID).Error; err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("get_barbershop", err))
		return
	}

	// --------------------------------------------------
	// Query base (sempre protegido por barbershop)
	// --------------------------------------------------
	q := db.Model(&models.AuditLog{}).Where("barbershop_id = ?", barbershopID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if requestID := c.Query("request_id"); requestID != "" {
		q = q.Where("request_id = ?", requestID)
	}

	// datas no fuso da barbearia; "to" é inclusivo
	if from, err := timezone.ParseDate(c.Query("from"), shop.Timezone); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := timezone.ParseDate(c.Query("to"), shop.Timezone); err == nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total + página
	// --------------------------------------------------
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("count_audit_logs", err))
		return
	}

	var logs []models.AuditLog
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.FromError(c, log, httperr.ErrRepository("list_audit_logs", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
