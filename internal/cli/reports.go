package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoza/invoza/internal/reports"
	"github.com/invoza/invoza/internal/services"
)

func newReportCmd(app *services.App, r *renderer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}
	cmd.AddCommand(newStatementCmd(app, r))
	cmd.AddCommand(newSalesCmd(app, r))
	cmd.AddCommand(newVATCmd(app, r))
	return cmd
}

func newStatementCmd(app *services.App, r *renderer) *cobra.Command {
	var opts reports.StatementOptions
	cmd := &cobra.Command{
		Use:   "statement <customer number|id>",
		Short: "Customer statement with aging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, ok := resolveCustomer(app, args[0])
			if !ok {
				return fmt.Errorf("customer %q not found", args[0])
			}
			s := reports.Statement(customer, app.Documents(), opts, time.Now().UTC())
			cmd.Print(r.Statement(s))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "issue date from (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "issue date to (YYYY-MM-DD, inclusive)")
	cmd.Flags().BoolVar(&opts.UnpaidOnly, "unpaid", false, "unpaid invoices only")
	return cmd
}

func newSalesCmd(app *services.App, r *renderer) *cobra.Command {
	var opts reports.ReportOptions
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sales report: revenue, top customers, monthly totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.SalesReport(reports.Sales(app.Documents(), app.Customers(), opts)))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "issue date from (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "issue date to (YYYY-MM-DD, inclusive)")
	return cmd
}

func newVATCmd(app *services.App, r *renderer) *cobra.Command {
	var opts reports.ReportOptions
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "VAT report: collected VAT by status and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.VATReport(reports.VAT(app.Documents(), opts)))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "issue date from (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "issue date to (YYYY-MM-DD, inclusive)")
	return cmd
}

func newSummaryCmd(app *services.App, r *renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Dashboard numbers: counts, revenue, pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(r.Summary(reports.Summarize(app.Customers(), app.Documents())))
			return nil
		},
	}
}
