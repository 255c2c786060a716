package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *appointment.CreateAppointment
	list   *appointment.ListAppointments
	status *appointment.ChangeStatus
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	list *appointment.ListAppointments,
	status *appointment.ChangeStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
		status: status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	StaffID     uint   `json:"staff_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (painel)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			BarbershopID: barbershopID,
			StaffID:      req.StaffID,
			ServiceID:    req.ServiceID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ClientEmail:  req.ClientEmail,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
			ActorUserID:  &userID,
			RequestID:    middleware.GetRequestID(c),
		},
	)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

// ListByDate: GET /me/appointments?date=2026-03-10[&staff_id=2]
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	staffID, ok := optionalStaffID(c)
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	list, err := h.list.ByDate(c.Request.Context(), barbershopID, staffID, date)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	httpresp.List(c, list)
}

// ListByMonth: GET /me/appointments/month?year=2026&month=3[&staff_id=2]
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	staffID, ok := optionalStaffID(c)
	if err1 != nil || err2 != nil || !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	list, err := h.list.ByMonth(c.Request.Context(), barbershopID, staffID, year, month)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, domain.StatusCompleted)
}

// UpdateStatus aceita qualquer transição válida (confirmed, no_show, ...).
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	h.changeStatus(c, domain.Status(strings.ToLower(strings.TrimSpace(req.Status))))
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, next domain.Status) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	ap, err := h.status.Execute(
		c.Request.Context(),
		appointment.ChangeStatusInput{
			BarbershopID:  barbershopID,
			AppointmentID: id,
			Status:        next,
			ActorUserID:   &userID,
			RequestID:     middleware.GetRequestID(c),
		},
	)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// optionalStaffID: ausente = todos (0); presente precisa ser um id válido.
func optionalStaffID(c *gin.Context) (uint, bool) {
	if c.Query("staff_id") == "" {
		return 0, true
	}
	return queryID(c, "staff_id")
}
