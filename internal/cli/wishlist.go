package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/domain"
)

func newWishlistCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage your wishlist",
	}
	cmd.AddCommand(
		newWishlistListCmd(a),
		newWishlistAddCmd(a),
		newWishlistRemoveCmd(a),
		newWishlistClearCmd(a),
		newWishlistCheckCmd(a),
	)
	return cmd
}

func newWishlistListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Wishlist.Fetch(cmd.Context()); err != nil {
				return err
			}
			snap := a.Wishlist.Snapshot()
			if len(snap.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "your wishlist is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BOOK\tAUTHOR\tPRICE\tADDED")
			for _, item := range snap.Items {
				added := ""
				if !item.AddedAt.IsZero() {
					added = item.AddedAt.Local().Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\n", item.BookName, item.Author, item.Price, added)
			}
			return w.Flush()
		},
	}
}

func newWishlistAddCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <bookId>",
		Short: "Save a book to your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.Wishlist.Add(cmd.Context(), domain.WishlistDraft{
				BookID:   book.ID,
				BookName: book.Name,
				Image:    book.Image,
				Price:    book.Price,
			})
			return nil
		},
	}
}

func newWishlistRemoveCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <bookId>",
		Short: "Remove a book from your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Wishlist.Remove(cmd.Context(), args[0])
			return nil
		},
	}
}

func newWishlistClearCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every book from your wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Wishlist.Clear(cmd.Context())
			return nil
		},
	}
}

func newWishlistCheckCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <bookId>",
		Short: "Ask the server whether a book is in your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.Wishlist.CheckRemote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if in {
				fmt.Fprintln(cmd.OutOrStdout(), "in wishlist")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not in wishlist")
			}
			return nil
		},
	}
}
