package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/services"
)

// documentCommandSpec parameterizes the shared invoice/quote command tree.
type documentCommandSpec struct {
	use      string
	aliases  []string
	singular string
	typ      models.DocumentType
}

var (
	invoiceCommandSpec = documentCommandSpec{
		use:      "invoices",
		aliases:  []string{"invoice"},
		singular: "invoice",
		typ:      models.TypeInvoice,
	}
	quoteCommandSpec = documentCommandSpec{
		use:      "quotes",
		aliases:  []string{"quote"},
		singular: "quote",
		typ:      models.TypeQuote,
	}
)

func newDocumentsCmd(app *services.App, r *renderer, spec documentCommandSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: spec.aliases,
		Short:   "Manage " + spec.use,
	}
	cmd.AddCommand(newDocumentsListCmd(app, r, spec))
	cmd.AddCommand(newDocumentsCreateCmd(app, r, spec))
	cmd.AddCommand(newDocumentsEditCmd(app, r, spec))
	cmd.AddCommand(newDocumentsShowCmd(app, r, spec))
	cmd.AddCommand(newDocumentsStatusCmd(app, spec))
	cmd.AddCommand(newDocumentsRemoveCmd(app, spec))
	return cmd
}

func newDocumentsListCmd(app *services.App, r *renderer, spec documentCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + spec.use,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.DocumentsTable(app.DocumentsByType(spec.typ)))
			return nil
		},
	}
}

// documentFlags are the raw flag values for create/edit.
type documentFlags struct {
	customer  string
	items     []string
	taxRate   float64
	issueDate string
	dueDate   string
	notes     string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.customer, "customer", "", "customer number or id")
	cmd.Flags().StringArrayVar(&f.items, "item", nil, `line item as "description:qty:rate" (repeatable)`)
	cmd.Flags().Float64Var(&f.taxRate, "tax-rate", 0, "tax rate in percent")
	cmd.Flags().StringVar(&f.issueDate, "issue-date", "", "issue date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.dueDate, "due-date", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
}

// parseItemSpec parses "description:qty:rate". The description may contain
// colons; the last two segments are the numbers.
func parseItemSpec(spec string) (services.ItemInput, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return services.ItemInput{}, fmt.Errorf("item %q: want description:qty:rate", spec)
	}
	rateStr := parts[len(parts)-1]
	qtyStr := parts[len(parts)-2]
	description := strings.Join(parts[:len(parts)-2], ":")
	qty, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil {
		return services.ItemInput{}, fmt.Errorf("item %q: bad quantity %q", spec, qtyStr)
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return services.ItemInput{}, fmt.Errorf("item %q: bad rate %q", spec, rateStr)
	}
	return services.ItemInput{Description: description, Quantity: qty, Rate: rate}, nil
}

func parseItemSpecs(specs []string) ([]services.ItemInput, error) {
	items := make([]services.ItemInput, 0, len(specs))
	for _, s := range specs {
		item, err := parseItemSpec(s)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func newDocumentsCreateCmd(app *services.App, r *renderer, spec documentCommandSpec) *cobra.Command {
	var flags documentFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + spec.singular,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseItemSpecs(flags.items)
			if err != nil {
				return err
			}
			customerID := flags.customer
			if c, ok := resolveCustomer(app, flags.customer); ok {
				customerID = c.ID
			}
			issue := flags.issueDate
			if issue == "" {
				issue = time.Now().UTC().Format(models.DateLayout)
			}
			doc, violations, err := app.AddDocument(services.DocumentInput{
				Type:       spec.typ,
				CustomerID: customerID,
				Items:      items,
				TaxRate:    flags.taxRate,
				IssueDate:  issue,
				DueDate:    flags.dueDate,
				Notes:      flags.notes,
			})
			if !violations.Empty() {
				cmd.Print(r.Violations(violations))
				return errValidation
			}
			if err != nil {
				return err
			}
			cmd.Printf("created %s (%s)\n", doc.Number, r.MoneyFloat(doc.Total))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDocumentsEditCmd(app *services.App, r *renderer, spec documentCommandSpec) *cobra.Command {
	var flags documentFlags
	cmd := &cobra.Command{
		Use:   "edit <number|id>",
		Short: "Edit a " + spec.singular + "; flags not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, ok := resolveDocument(app, spec.typ, args[0])
			if !ok {
				return fmt.Errorf("%s %q not found", spec.singular, args[0])
			}
			in := services.DocumentInput{
				Type:       existing.Type,
				CustomerID: existing.CustomerID,
				TaxRate:    existing.TaxRate,
				IssueDate:  existing.IssueDate,
				DueDate:    existing.DueDate,
				Notes:      existing.Notes,
			}
			for _, it := range existing.Items {
				in.Items = append(in.Items, services.ItemInput{
					Description: it.Description,
					Quantity:    it.Quantity,
					Rate:        it.Rate,
				})
			}
			if cmd.Flags().Changed("customer") {
				in.CustomerID = flags.customer
				if c, ok := resolveCustomer(app, flags.customer); ok {
					in.CustomerID = c.ID
				}
			}
			if cmd.Flags().Changed("item") {
				items, err := parseItemSpecs(flags.items)
				if err != nil {
					return err
				}
				in.Items = items
			}
			applyIfChanged(cmd, map[string]func(){
				"tax-rate":   func() { in.TaxRate = flags.taxRate },
				"issue-date": func() { in.IssueDate = flags.issueDate },
				"due-date":   func() { in.DueDate = flags.dueDate },
				"notes":      func() { in.Notes = flags.notes },
			})
			doc, violations, err := app.UpdateDocument(existing.ID, in)
			if !violations.Empty() {
				cmd.Print(r.Violations(violations))
				return errValidation
			}
			if err != nil {
				return err
			}
			cmd.Printf("updated %s (%s)\n", doc.Number, r.MoneyFloat(doc.Total))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDocumentsShowCmd(app *services.App, r *renderer, spec documentCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number|id>",
		Short: "Show one " + spec.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, ok := resolveDocument(app, spec.typ, args[0])
			if !ok {
				return fmt.Errorf("%s %q not found", spec.singular, args[0])
			}
			cmd.Print(r.Document(doc))
			return nil
		},
	}
}

func newDocumentsStatusCmd(app *services.App, spec documentCommandSpec) *cobra.Command {
	allowed := make([]string, 0, 4)
	for _, s := range spec.typ.AllowedStatuses() {
		allowed = append(allowed, string(s))
	}
	return &cobra.Command{
		Use:   "status <number|id> <" + strings.Join(allowed, "|") + ">",
		Short: "Set the status of a " + spec.singular,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, ok := resolveDocument(app, spec.typ, args[0])
			if !ok {
				return fmt.Errorf("%s %q not found", spec.singular, args[0])
			}
			updated, err := app.SetStatus(doc.ID, models.DocumentStatus(args[1]))
			if err != nil {
				return err
			}
			cmd.Printf("%s is now %s\n", updated.Number, updated.Status)
			return nil
		},
	}
}

func newDocumentsRemoveCmd(app *services.App, spec documentCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a " + spec.singular,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, ok := resolveDocument(app, spec.typ, args[0])
			if !ok {
				return fmt.Errorf("%s %q not found", spec.singular, args[0])
			}
			if err := app.DeleteDocument(doc.ID); err != nil {
				return err
			}
			cmd.Printf("deleted %s\n", doc.Number)
			return nil
		},
	}
}

// resolveDocument accepts an INV-NNN / QUO-NNN identifier or a record id
// and checks the type matches the command tree it was reached through.
func resolveDocument(app *services.App, typ models.DocumentType, arg string) (models.Document, bool) {
	if d, ok := app.DocumentByNumber(arg); ok && d.Type == typ {
		return d, true
	}
	if d, ok := app.DocumentByID(arg); ok && d.Type == typ {
		return d, true
	}
	return models.Document{}, false
}
