package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/numbering"
	"github.com/invoza/invoza/validation"
)

// CustomerInput carries the editable customer profile fields. The customer
// number is never part of the input: it is allocated on creation and
// immutable afterwards.
type CustomerInput struct {
	Name                string
	Email               string
	Phone               string
	Address             string
	Company             string
	VATNumber           string
	CompanyRegistration string
}

func validateCustomer(in CustomerInput) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", in.Name, "Name is required", v)
	validation.Required("email", in.Email, "Email is required", v)
	validation.Email("email", in.Email, "Invalid email", v)
	validation.Required("company", in.Company, "Company is required", v)
	return v
}

// AddCustomer validates the input, allocates the next free customer number
// (gap-filling: with CUS-001 and CUS-003 in use, the new customer becomes
// CUS-002) and persists the grown collection.
func (a *App) AddCustomer(in CustomerInput) (models.Customer, validation.Violations, error) {
	if v := validateCustomer(in); !v.Empty() {
		return models.Customer{}, v, nil
	}

	now := time.Now().UTC()
	customer := models.Customer{
		ID:                  uuid.NewString(),
		CustomerNumber:      numbering.NextCustomerNumber(a.customers),
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Address:             in.Address,
		Company:             in.Company,
		VATNumber:           in.VATNumber,
		CompanyRegistration: in.CompanyRegistration,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	a.customers = append(a.customers, customer)
	return customer, nil, a.persistCustomers()
}

// UpdateCustomer replaces the profile fields of an existing customer.
// Documents created earlier keep their snapshot of the old profile.
func (a *App) UpdateCustomer(id string, in CustomerInput) (models.Customer, validation.Violations, error) {
	if v := validateCustomer(in); !v.Empty() {
		return models.Customer{}, v, nil
	}

	for i := range a.customers {
		if a.customers[i].ID != id {
			continue
		}
		c := &a.customers[i]
		c.Name = in.Name
		c.Email = in.Email
		c.Phone = in.Phone
		c.Address = in.Address
		c.Company = in.Company
		c.VATNumber = in.VATNumber
		c.CompanyRegistration = in.CompanyRegistration
		c.UpdatedAt = time.Now().UTC()
		return *c, nil, a.persistCustomers()
	}
	return models.Customer{}, nil, ErrNotFound
}

// DeleteCustomer removes a customer. Its documents remain, carrying the
// snapshot taken at creation; the freed customer number becomes allocatable
// again.
func (a *App) DeleteCustomer(id string) error {
	for i := range a.customers {
		if a.customers[i].ID == id {
			a.customers = append(a.customers[:i], a.customers[i+1:]...)
			return a.persistCustomers()
		}
	}
	return ErrNotFound
}

// CustomerByID looks a customer up by record id.
func (a *App) CustomerByID(id string) (models.Customer, bool) {
	for _, c := range a.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// CustomerByNumber looks a customer up by its CUS-NNN identifier.
func (a *App) CustomerByNumber(number string) (models.Customer, bool) {
	for _, c := range a.customers {
		if c.CustomerNumber == number {
			return c, true
		}
	}
	return models.Customer{}, false
}
