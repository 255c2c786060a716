package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type BarbershopHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

// uploader nil desliga o upload de logo (503).
func NewBarbershopHandler(db *gorm.DB, uploader storage.Uploader) *BarbershopHandler {
	return &BarbershopHandler{db: db, uploader: uploader}
}

type UpdateBarbershopRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, barbershopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeBarbershopNotFound))
			return nil, false
		}
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("get_barbershop", err))
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Nome obrigatório.")
			return
		}
		shop.Name = name
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.City != nil {
		shop.City = *req.City
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("update_barbershop", err))
		return
	}

	c.JSON(http.StatusOK, shop)
}

// UploadLogo: multipart "logo" -> webp 512px -> storage.
func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	if h.uploader == nil {
		httperr.Unavailable(c, storage.ErrDisabled.Error(), "Upload de imagens indisponível.")
		return
	}

	shop, ok := h.load(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo 'logo' obrigatório.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo inválido.")
		return
	}
	defer f.Close()

	data, err := media.ProcessLogo(f)
	switch {
	case errors.Is(err, media.ErrImageTooBig):
		httperr.Write(c, http.StatusRequestEntityTooLarge, media.ErrImageTooBig.Error(), "Imagem maior que 5MB.")
		return
	case errors.Is(err, media.ErrInvalidImage):
		httperr.BadRequest(c, media.ErrInvalidImage.Error(), "Formato de imagem não suportado.")
		return
	case err != nil:
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	key := fmt.Sprintf("barbershops/%d/logo-%d.webp", shop.ID, shop.UpdatedAt.Unix())
	url, err := h.uploader.Put(c.Request.Context(), key, media.LogoContentType, data)
	if err != nil {
		httperr.FromError(c, middleware.Logger(c), err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("logo_url", url).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("update_logo", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
