package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/catalog"
	"github.com/bookcourier/bookcourier/pkg/pagination"
)

func newBooksCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}
	cmd.AddCommand(newBooksListCmd(a), newBooksShowCmd(a))
	return cmd
}

func newBooksListCmd(a *app.App) *cobra.Command {
	var (
		filter  catalog.Filter
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Catalog.ListPage(cmd.Context(), filter, pagination.NewParams(page, perPage))
			if err != nil {
				return err
			}
			if result.TotalCount == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no books found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPRICE\tRATING")
			for _, b := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%.1f\n", b.ID, b.Name, b.Author, b.Price, b.Rating)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if result.TotalPages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d books)\n", result.Page, result.TotalPages, result.TotalCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Genre, "genre", "", "filter by genre")
	cmd.Flags().StringVar(&filter.Author, "author", "", "filter by author")
	cmd.Flags().StringVar(&filter.Search, "search", "", "search in titles")
	cmd.Flags().Float64Var(&filter.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&filter.Sort, "sort", "", "sort order: title, price, price-desc, rating")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "books per page")
	return cmd
}

func newBooksShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <bookId>",
		Short: "Show one book's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s by %s\n", book.Name, book.Author)
			fmt.Fprintf(out, "price:  $%.2f\n", book.Price)
			if book.Genre != "" {
				fmt.Fprintf(out, "genre:  %s\n", book.Genre)
			}
			if book.Rating > 0 {
				fmt.Fprintf(out, "rating: %.1f\n", book.Rating)
			}
			if book.Description != "" {
				fmt.Fprintf(out, "\n%s\n", book.Description)
			}
			if !book.InStock {
				fmt.Fprintln(out, "\ncurrently out of stock")
			}
			return nil
		},
	}
}
