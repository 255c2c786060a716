package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// BookingHandler atende o fluxo do cliente final (sem login).
type BookingHandler struct {
	availability  *appointment.GetAvailability
	create        *appointment.CreateAppointment
	getByToken    *appointment.GetByToken
	cancelByToken *appointment.CancelByToken
}

func NewBookingHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	getByToken *appointment.GetByToken,
	cancelByToken *appointment.CancelByToken,
) *BookingHandler {
	return &BookingHandler{
		availability:  availability,
		create:        create,
		getByToken:    getByToken,
		cancelByToken: cancelByToken,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone" binding:"required"`
	Notes string `json:"notes"`
}

type BookingCreateRequest struct {
	BarbershopID uint         `json:"barbershopId" binding:"required"`
	ServiceID    uint         `json:"serviceId" binding:"required"`
	StaffID      uint         `json:"staffId" binding:"required"`
	Date         string       `json:"date" binding:"required"`
	Time         string       `json:"time" binding:"required"`
	CustomerInfo CustomerInfo `json:"customerInfo" binding:"required"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *BookingHandler) Availability(c *gin.Context) {
	barbershopID, ok1 := queryID(c, "barbershopId")
	staffID, ok2 := queryID(c, "staffId")
	serviceID, ok3 := queryID(c, "serviceId")
	date := c.Query("date")

	if !ok1 || !ok2 || !ok3 || date == "" {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: barbershopID,
			StaffID:      staffID,
			ServiceID:    serviceID,
			Date:         date,
			ExcludePast:  c.Query("excludePast") == "true",
		},
	)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availableSlots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			BarbershopID: req.BarbershopID,
			StaffID:      req.StaffID,
			ServiceID:    req.ServiceID,
			ClientName:   req.CustomerInfo.Name,
			ClientPhone:  req.CustomerInfo.Phone,
			ClientEmail:  req.CustomerInfo.Email,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.CustomerInfo.Notes,
			RequestID:    middleware.GetRequestID(c),
		},
	)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"appointmentId": ap.ID,
		"token":         ap.PublicToken,
	})
}

////////////////////////////////////////////////////////
// PÁGINA DO CLIENTE
////////////////////////////////////////////////////////

func (h *BookingHandler) GetByToken(c *gin.Context) {
	ap, err := h.getByToken.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicAppointment(ap))
}

func (h *BookingHandler) CancelByToken(c *gin.Context) {
	ap, err := h.cancelByToken.Execute(
		c.Request.Context(),
		c.Param("token"),
		middleware.GetRequestID(c),
	)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicAppointment(ap))
}

// queryID lê um id positivo da query string.
func queryID(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func paramID(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
