package utils

import (
	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("role", ValidateRoleRule)
	v.RegisterValidation("projectstatus", ValidateProjectStatusRule)
	v.RegisterValidation("taskstatus", ValidateTaskStatusRule)
}

func ValidateRoleRule(fl validator.FieldLevel) bool {
	_, err := model.ParseRole(fl.Field().String())
	return err == nil
}

func ValidateProjectStatusRule(fl validator.FieldLevel) bool {
	return model.ValidProjectStatus(fl.Field().String())
}

func ValidateTaskStatusRule(fl validator.FieldLevel) bool {
	return model.ValidTaskStatus(fl.Field().String())
}
