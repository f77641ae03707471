package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/services"
)

// errValidation signals a non-zero exit after violations were printed.
var errValidation = errors.New("validation failed")

func newCustomersCmd(app *services.App, r *renderer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}
	cmd.AddCommand(newCustomersListCmd(app, r))
	cmd.AddCommand(newCustomersAddCmd(app, r))
	cmd.AddCommand(newCustomersEditCmd(app, r))
	cmd.AddCommand(newCustomersShowCmd(app, r))
	cmd.AddCommand(newCustomersRemoveCmd(app))
	return cmd
}

func newCustomersListCmd(app *services.App, r *renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.CustomersTable(app.Customers()))
			return nil
		},
	}
}

func customerInputFlags(cmd *cobra.Command, in *services.CustomerInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&in.Company, "company", "", "company name")
	cmd.Flags().StringVar(&in.VATNumber, "vat-number", "", "VAT number")
	cmd.Flags().StringVar(&in.CompanyRegistration, "company-registration", "", "company registration")
}

func newCustomersAddCmd(app *services.App, r *renderer) *cobra.Command {
	var in services.CustomerInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, violations, err := app.AddCustomer(in)
			if !violations.Empty() {
				cmd.Print(r.Violations(violations))
				return errValidation
			}
			if err != nil {
				return err
			}
			cmd.Printf("created %s\n", customer.CustomerNumber)
			return nil
		},
	}
	customerInputFlags(cmd, &in)
	return cmd
}

func newCustomersEditCmd(app *services.App, r *renderer) *cobra.Command {
	var in services.CustomerInput
	cmd := &cobra.Command{
		Use:   "edit <number|id>",
		Short: "Edit a customer; flags not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, ok := resolveCustomer(app, args[0])
			if !ok {
				return fmt.Errorf("customer %q not found", args[0])
			}
			merged := services.CustomerInput{
				Name:                existing.Name,
				Email:               existing.Email,
				Phone:               existing.Phone,
				Address:             existing.Address,
				Company:             existing.Company,
				VATNumber:           existing.VATNumber,
				CompanyRegistration: existing.CompanyRegistration,
			}
			applyIfChanged(cmd, map[string]func(){
				"name":                 func() { merged.Name = in.Name },
				"email":                func() { merged.Email = in.Email },
				"phone":                func() { merged.Phone = in.Phone },
				"address":              func() { merged.Address = in.Address },
				"company":              func() { merged.Company = in.Company },
				"vat-number":           func() { merged.VATNumber = in.VATNumber },
				"company-registration": func() { merged.CompanyRegistration = in.CompanyRegistration },
			})
			customer, violations, err := app.UpdateCustomer(existing.ID, merged)
			if !violations.Empty() {
				cmd.Print(r.Violations(violations))
				return errValidation
			}
			if err != nil {
				return err
			}
			cmd.Printf("updated %s\n", customer.CustomerNumber)
			return nil
		},
	}
	customerInputFlags(cmd, &in)
	return cmd
}

func newCustomersShowCmd(app *services.App, r *renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number|id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, ok := resolveCustomer(app, args[0])
			if !ok {
				return fmt.Errorf("customer %q not found", args[0])
			}
			cmd.Print(r.Customer(customer))
			return nil
		},
	}
}

func newCustomersRemoveCmd(app *services.App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a customer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, ok := resolveCustomer(app, args[0])
			if !ok {
				return fmt.Errorf("customer %q not found", args[0])
			}
			if err := app.DeleteCustomer(customer.ID); err != nil {
				return err
			}
			cmd.Printf("deleted %s\n", customer.CustomerNumber)
			return nil
		},
	}
}

// resolveCustomer accepts a CUS-NNN identifier or a record id.
func resolveCustomer(app *services.App, arg string) (models.Customer, bool) {
	if c, ok := app.CustomerByNumber(arg); ok {
		return c, true
	}
	return app.CustomerByID(arg)
}

// applyIfChanged runs the setter for every flag the user set explicitly.
func applyIfChanged(cmd *cobra.Command, setters map[string]func()) {
	for flag, set := range setters {
		if cmd.Flags().Changed(flag) {
			set()
		}
	}
}
