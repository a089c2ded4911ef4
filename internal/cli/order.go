package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/order"
)

func newOrderCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "order <bookId>",
		Short: "Place a delivery order for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Session.Authenticated() {
				a.Notifier.Warning("please sign in to place an order")
				return nil
			}

			book, err := a.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			id := a.Session.Identity()
			w := order.NewWizard(a.API, a.Notifier, a.Logger, *book,
				order.Identity{Name: id.Name, Email: id.Email}, nil)

			return runOrderWizard(cmd, w)
		},
	}
}

// runOrderWizard walks the user through details -> confirm -> submit.
func runOrderWizard(cmd *cobra.Command, w *order.Wizard) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	book := w.Book()

	fmt.Fprintf(out, "Ordering %q by %s for $%.2f (cash on delivery)\n\n", book.Name, book.Author, book.Price)

	for {
		details := w.Details()
		w.SetName(promptDefault(out, scanner, "Name", details.Name))
		w.SetEmail(promptDefault(out, scanner, "Email", details.Email))
		w.SetPhone(promptDefault(out, scanner, "Phone", details.Phone))
		w.SetAddress(promptDefault(out, scanner, "Delivery address", details.Address))
		w.SetInstructions(promptDefault(out, scanner, "Special instructions (optional)", details.Instructions))

		if err := w.Next(); err != nil {
			printFieldErrors(out, w.FieldErrors())
			continue
		}

		details = w.Details()
		fmt.Fprintf(out, "\nDeliver %q to:\n  %s <%s>\n  %s\n  %s\n",
			book.Name, details.Name, details.Email, details.Phone, details.Address)
		if details.Instructions != "" {
			fmt.Fprintf(out, "  note: %s\n", details.Instructions)
		}

		if !confirm(out, scanner, "Place this order?") {
			if err := w.Back(); err != nil {
				return err
			}
			continue
		}

		placed, err := w.Submit(cmd.Context())
		if err != nil {
			// The wizard is back on Details; let the user correct and retry.
			fmt.Fprintln(out, "submission failed, review your details and try again")
			continue
		}
		fmt.Fprintf(out, "\norder %s placed, total $%.2f\n", placed.ID, w.Total())
		return nil
	}
}

func promptDefault(out io.Writer, scanner *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	if !scanner.Scan() {
		return current
	}
	text := strings.TrimSpace(scanner.Text())
	if text == "" {
		return current
	}
	return text
}

func confirm(out io.Writer, scanner *bufio.Scanner, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	fmt.Fprintln(out)
	for _, field := range fields {
		fmt.Fprintf(out, "  %s: %s\n", field, errs[field])
	}
	fmt.Fprintln(out)
}
