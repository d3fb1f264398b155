package validator

import (
	"log"

	"givegot_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-skill-type", validateSkillType)
	mustRegister("is-booking-status", validateBookingStatus)
}

func validateSkillType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is the job of 'required'
	}
	return models.IsValidSkillType(value)
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidBookingStatus(value)
}
