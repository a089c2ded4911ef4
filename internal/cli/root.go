// Package cli implements the BookCourier command line interface on top of
// the wired application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
)

// New builds the root command with all subcommands attached.
func New(a *app.App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookcourier",
		Short:         "BookCourier book delivery marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newBooksCmd(a),
		newWishlistCmd(a),
		newOrderCmd(a),
		newOrdersCmd(a),
		newReviewCmd(a),
	)
	return root
}
