package validator

import (
	"log"

	"teamvault_backend/internal/models"
	"teamvault_backend/internal/types"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the portal's validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-profile-role", validateProfileRole)
	mustRegister("is-profile-status", validateProfileStatus)
	mustRegister("is-sort-key", validateSortKey)
}

func validateProfileRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return models.ValidRole(models.ProfileRole(value))
}

func validateProfileStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidStatus(models.ProfileStatus(value))
}

func validateSortKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return types.ValidSortKey(value)
}
