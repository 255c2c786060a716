package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
)

// ValidHHMM aceita "" (campo opcional) ou um horário "HH:MM" válido.
var ValidHHMM validator.Func = func(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, err := availability.ParseClock(v)
	return err == nil
}

// Register adiciona as tags customizadas ao validator do gin.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("hhmm", ValidHHMM)
}
