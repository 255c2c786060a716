package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time" binding:"hhmm"`
	EndTime    string `json:"end_time" binding:"hhmm"`
	LunchStart string `json:"lunch_start" binding:"hhmm"`
	LunchEnd   string `json:"lunch_end" binding:"hhmm"`
}

// StaffID nulo edita o padrão da barbearia.
type WorkingHoursUpdateRequest struct {
	StaffID *uint              `json:"staff_id"`
	Days    []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

var errInvalidLunch = errors.New("lunch outside working window")

// validateDay usa a mesma resolução da disponibilidade: o que passa
// aqui é o que o motor de horários vai ler.
func validateDay(wh *models.WorkingHours) error {
	day, err := domain.ResolveWorkingDay(wh)
	if err != nil {
		return err
	}
	if !wh.Active {
		return nil
	}

	if (wh.LunchStart == "") != (wh.LunchEnd == "") {
		return errInvalidLunch
	}
	if wh.LunchStart != "" && day.Lunch == nil {
		return errInvalidLunch
	}
	if day.Lunch != nil &&
		(day.Lunch.Start < day.Window.Start || day.Lunch.End() > day.Window.End) {
		return errInvalidLunch
	}
	return nil
}

// Get: ?staff_id=3 devolve o expediente próprio do profissional.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	staffID, ok := optionalStaffID(c)
	if !ok {
		httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)
	if staffID == 0 {
		q = q.Where("staff_id IS NULL")
	} else {
		q = q.Where("staff_id = ?", staffID)
	}

	var hours []models.WorkingHours
	if err := q.Order("weekday ASC").Find(&hours).Error; err != nil {
		httperr.FromError(c, middleware.Logger(c), httperr.ErrRepository("list_working_hours", err))
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui todo o expediente do escopo (barbearia ou profissional).
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	log := middleware.Logger(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	db := h.db.WithContext(c.Request.Context())

	if req.StaffID != nil {
		var n int64
		if err := db.Model(&models.Staff{}).
			Where("id = ? AND barbershop_id = ?", *req.StaffID, barbershopID).
			Count(&n).Error; err != nil {
			httperr.FromError(c, log, httperr.ErrRepository("get_staff", err))
			return
		}
		if n == 0 {
			httperr.FromError(c, nil, httperr.ErrBusiness(httperr.CodeStaffNotFound))
			return
		}
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicated_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		wh := models.WorkingHours{
			BarbershopID: barbershopID,
			StaffID:      req.StaffID,
			Weekday:      d.Weekday,
			Active:       d.Active,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			LunchStart:   d.LunchStart,
			LunchEnd:     d.LunchEnd,
		}
		if err := validateDay(&wh); err != nil {
			httperr.BadRequest(c, "invalid_working_hours", "Horário de funcionamento inválido.")
			return
		}
		toCreate = append(toCreate, wh)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		del := tx.Where("barbershop_id = ?", barbershopID)
		if req.StaffID == nil {
			del = del.Where("staff_id IS NULL")
		} else {
			del = del.Where("staff_id = ?", *req.StaffID)
		}
		if err := del.Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.FromError(c, log, httperr.ErrRepository("save_working_hours", err))
		return
	}

	c.JSON(http.StatusOK, toCreate)
}
