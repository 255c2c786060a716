package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Barbershop").
		First(&user, userID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "")
			return
		}
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("get_user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userJSON(&user),
		"barbershop": barbershopJSON(&user.Barbershop),
	})
}
