package handlers

import (
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidations hooks domain-aware rules into gin's binding validator.
// The movement kind enum is too long for a oneof tag and already lives in the domain.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("movementkind", func(fl validator.FieldLevel) bool {
		return domain.ValidMovementKind(domain.MovementKind(fl.Field().String()))
	})
}
