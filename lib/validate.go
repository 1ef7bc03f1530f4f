package lib

import (
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("validid", func(fl validator.FieldLevel) bool {
		return IsValidID(fl.Field().String())
	})
	v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return IsValidGlob(fl.Field().String())
	})
	v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		_, err := CleanRelPath(fl.Field().String())
		return err == nil
	})

	return v
}
