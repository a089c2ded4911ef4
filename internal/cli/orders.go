package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/internal/session"
)

func newOrdersCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View and manage orders",
	}
	cmd.AddCommand(
		newOrdersMyCmd(a),
		newOrdersListCmd(a),
		newOrdersStatusCmd(a),
		newOrdersInvoiceCmd(a),
	)
	return cmd
}

func newOrdersMyCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "my",
		Short: "List your own orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.API.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd, orders)
		},
	}
}

func newOrdersListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders (librarian/admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Session.HasRole(session.RoleLibrarian, session.RoleAdmin) {
				a.Notifier.Warning("the order dashboard requires a librarian or admin account")
				return nil
			}
			orders, err := a.API.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd, orders)
		},
	}
}

func newOrdersStatusCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <orderId> <status>",
		Short: "Update an order's delivery status (librarian/admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Session.HasRole(session.RoleLibrarian, session.RoleAdmin) {
				a.Notifier.Warning("updating order status requires a librarian or admin account")
				return nil
			}
			orderID, status := args[0], args[1]
			if !domain.IsValidOrderStatus(status) {
				return fmt.Errorf("invalid status %q, valid statuses: %v", status, domain.ValidOrderStatuses())
			}
			updated, err := a.API.UpdateOrderStatus(cmd.Context(), orderID, status)
			if err != nil {
				return err
			}
			a.Notifier.Success(fmt.Sprintf("order %s is now %s", updated.ID, updated.Status))
			return nil
		},
	}
}

func newOrdersInvoiceCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "invoice <orderId>",
		Short: "Show the invoice for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.API.GetInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "invoice %s for order %s\n", inv.InvoiceNumber, inv.OrderID)
			if !inv.IssuedAt.IsZero() {
				fmt.Fprintf(out, "issued:   %s\n", inv.IssuedAt.Local().Format("2006-01-02"))
			}
			fmt.Fprintf(out, "customer: %s <%s>\n", inv.CustomerName, inv.CustomerEmail)
			fmt.Fprintf(out, "book:     %s\n", inv.BookName)
			fmt.Fprintf(out, "amount:   $%.2f\n", inv.Amount)
			return nil
		},
	}
}

func printOrders(cmd *cobra.Command, orders []domain.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no orders found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOOK\tSTATUS\tPAYMENT\tPRICE\tDATE")
	for _, o := range orders {
		date := ""
		if !o.OrderDate.IsZero() {
			date = o.OrderDate.Local().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\t%s\n", o.ID, o.BookName, o.Status, o.PaymentStatus, o.BookPrice, date)
	}
	return w.Flush()
}
