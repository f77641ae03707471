package cli

import (
	"github.com/spf13/cobra"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/services"
)

func newSettingsCmd(app *services.App, r *renderer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Business profile used on documents",
	}
	cmd.AddCommand(newSettingsShowCmd(app, r))
	cmd.AddCommand(newSettingsSetCmd(app, r))
	return cmd
}

func newSettingsShowCmd(app *services.App, r *renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the business profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.Settings(app.Settings()))
			return nil
		},
	}
}

func newSettingsSetCmd(app *services.App, r *renderer) *cobra.Command {
	var in models.BusinessSettings
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the business profile; flags not given keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged := models.BusinessSettings{}
			if current := app.Settings(); current != nil {
				merged = *current
			}
			applyIfChanged(cmd, map[string]func(){
				"business-name":        func() { merged.BusinessName = in.BusinessName },
				"address":              func() { merged.Address = in.Address },
				"email":                func() { merged.Email = in.Email },
				"phone":                func() { merged.Phone = in.Phone },
				"vat-number":           func() { merged.VATNumber = in.VATNumber },
				"company-registration": func() { merged.CompanyRegistration = in.CompanyRegistration },
				"bank-name":            func() { merged.BankName = in.BankName },
				"account-holder":       func() { merged.AccountHolder = in.AccountHolder },
				"account-number":       func() { merged.AccountNumber = in.AccountNumber },
				"branch-code":          func() { merged.BranchCode = in.BranchCode },
			})
			violations, err := app.SaveSettings(merged)
			if !violations.Empty() {
				cmd.Print(r.Violations(violations))
				return errValidation
			}
			if err != nil {
				return err
			}
			cmd.Println("settings saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.BusinessName, "business-name", "", "business name")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.VATNumber, "vat-number", "", "VAT number")
	cmd.Flags().StringVar(&in.CompanyRegistration, "company-registration", "", "company registration")
	cmd.Flags().StringVar(&in.BankName, "bank-name", "", "bank name")
	cmd.Flags().StringVar(&in.AccountHolder, "account-holder", "", "account holder")
	cmd.Flags().StringVar(&in.AccountNumber, "account-number", "", "account number")
	cmd.Flags().StringVar(&in.BranchCode, "branch-code", "", "branch code")
	return cmd
}
