package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Dashboard
}

func NewDashboardHandler(d *dashboard.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: d}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	stats, err := h.dashboard.Stats(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Customers(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	customers, err := h.dashboard.Customers(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	httpresp.List(c, customers)
}
