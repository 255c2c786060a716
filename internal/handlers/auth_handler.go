package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/onboarding"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AuthHandler struct {
	db        *gorm.DB
	jwtSecret string
	now       func() time.Time
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret, now: time.Now}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName    string `json:"barbershop_name" binding:"required"`
	BarbershopSlug    string `json:"barbershop_slug"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`
	Timezone          string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria barbearia, dono, o dono como profissional e o
// expediente padrão, tudo na mesma transação.
func (h *AuthHandler) Register(c *gin.Context) {
	log := middleware.Logger(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("count_users", err))
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	base := onboarding.Slugify(req.BarbershopSlug)
	if base == "" {
		base = onboarding.Slugify(req.BarbershopName)
	}

	var (
		shop models.Barbershop
		user models.User
	)

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		slug, err := onboarding.UniqueSlug(base, func(s string) (bool, error) {
			var n int64
			err := tx.Model(&models.Barbershop{}).Where("slug = ?", s).Count(&n).Error
			return n > 0, err
		})
		if err != nil {
			return err
		}

		shop = models.Barbershop{
			Name:              strings.TrimSpace(req.BarbershopName),
			Slug:              slug,
			Phone:             req.BarbershopPhone,
			Address:           req.BarbershopAddress,
			Email:             email,
			Timezone:          tz,
			MinAdvanceMinutes: 120,
			Active:            true,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		user = models.User{
			BarbershopID: shop.ID,
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         "owner",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		staff := models.Staff{
			BarbershopID: shop.ID,
			UserID:       &user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Phone:        user.Phone,
			Role:         "owner",
			Active:       true,
		}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}

		hours := onboarding.DefaultWorkingHours(shop.ID)
		return tx.Create(&hours).Error
	})
	if err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("register", err))
		return
	}

	log.Info("barbershop registered",
		zap.Uint("barbershop_id", shop.ID),
		zap.String("slug", shop.Slug),
	)

	user.Barbershop = shop
	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Barbershop").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "")
			return
		}
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("get_user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "")
		return
	}

	h.respondWithToken(c, http.StatusOK, &user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.jwtSecret, user.ID, user.BarbershopID, user.Role, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "")
		return
	}

	c.JSON(status, gin.H{
		"user":       userJSON(user),
		"barbershop": barbershopJSON(&user.Barbershop),
		"token":      token,
	})
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"barbershop_id": user.BarbershopID,
	}
}

func barbershopJSON(shop *models.Barbershop) gin.H {
	return gin.H{
		"id":       shop.ID,
		"name":     shop.Name,
		"slug":     shop.Slug,
		"phone":    shop.Phone,
		"address":  shop.Address,
		"timezone": shop.Timezone,
		"logo_url": shop.LogoURL,
	}
}
