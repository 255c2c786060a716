package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo domain.Repository
}

func NewPublicHandler(repo domain.Repository) *PublicHandler {
	return &PublicHandler{repo: repo}
}

////////////////////////////////////////////////////////
// BARBEARIA (serviços + profissionais ativos)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	ctx := c.Request.Context()
	log := middleware.Logger(c)

	shop, err := h.repo.GetBarbershopBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeBarbershopNotFound))
			return
		}
		httperr.FromError(c, log, httperr.ErrRepository("get_barbershop_by_slug", err))
		return
	}

	services, err := h.repo.ListServices(ctx, shop.ID)
	if err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("list_services", err))
		return
	}

	staff, err := h.repo.ListStaff(ctx, shop.ID)
	if err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("list_staff", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
		"staff":      staff,
	})
}
