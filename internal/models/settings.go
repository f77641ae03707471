package models

// BusinessSettings is the singleton profile of the issuing business. It is
// created on first save and overwritten on every save after that.
type BusinessSettings struct {
	BusinessName        string `json:"businessName"`
	Address             string `json:"address"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	VATNumber           string `json:"vatNumber"`
	CompanyRegistration string `json:"companyRegistration"`
	LogoDataURL         string `json:"logoDataUrl,omitempty"`
	BankName            string `json:"bankName,omitempty"`
	AccountHolder       string `json:"accountHolder,omitempty"`
	AccountNumber       string `json:"accountNumber,omitempty"`
	BranchCode          string `json:"branchCode,omitempty"`
	PrimaryColor        string `json:"primaryColor,omitempty"`
	SecondaryColor      string `json:"secondaryColor,omitempty"`
}

// HasBanking reports whether any banking detail has been captured.
func (s BusinessSettings) HasBanking() bool {
	return s.BankName != "" || s.AccountHolder != "" || s.AccountNumber != "" || s.BranchCode != ""
}
