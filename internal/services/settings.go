package services

import (
	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/validation"
)

func validateSettings(s models.BusinessSettings) validation.Violations {
	v := make(validation.Violations)
	validation.Required("businessName", s.BusinessName, "Business name is required", v)
	validation.Required("email", s.Email, "Email is required", v)
	validation.Email("email", s.Email, "Invalid email", v)
	validation.Required("phone", s.Phone, "Phone is required", v)
	validation.Required("vatNumber", s.VATNumber, "VAT number is required", v)
	validation.Required("companyRegistration", s.CompanyRegistration, "Company registration is required", v)
	validation.Required("address", s.Address, "Address is required", v)
	return v
}

// Settings returns the business profile, or nil before the first save.
func (a *App) Settings() *models.BusinessSettings { return a.settings }

// SaveSettings validates and stores the singleton business profile,
// creating it on first save and overwriting it afterwards.
func (a *App) SaveSettings(s models.BusinessSettings) (validation.Violations, error) {
	if v := validateSettings(s); !v.Empty() {
		return v, nil
	}
	a.settings = &s
	if err := a.store.SaveSettings(s); err != nil {
		a.log.Errorw("persist settings failed", "error", err)
		return nil, err
	}
	return nil, nil
}
