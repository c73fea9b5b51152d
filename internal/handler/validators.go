package handler

import (
	"github.com/devimrittika/Green-Planet/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validations. Call once
// at startup before routes are mounted.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("visibility", validVisibility)
	}
}

// visibility values contain spaces, which oneof cannot express
// cleanly.
func validVisibility(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == model.VisibilityPublic || s == model.VisibilityCommunity
}
