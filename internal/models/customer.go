package models

import "time"

// Customer is a billing customer.
// CustomerNumber is assigned by the numbering allocator (CUS-NNN) and never
// changes afterwards; profile fields are freely editable.
type Customer struct {
	ID                  string    `json:"id"`
	CustomerNumber      string    `json:"customerNumber"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	Address             string    `json:"address,omitempty"`
	Company             string    `json:"company"`
	VATNumber           string    `json:"vatNumber,omitempty"`
	CompanyRegistration string    `json:"companyRegistration,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DisplayName returns the company name when set, the contact name otherwise.
func (c Customer) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}
