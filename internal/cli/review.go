package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/review"
)

func newReviewCmd(a *app.App) *cobra.Command {
	var (
		rating  int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "review <bookId>",
		Short: "Review a book you received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Session.Authenticated() {
				a.Notifier.Warning("please sign in to review a book")
				return nil
			}

			flow := review.NewFlow(a.API, a.Notifier, a.Logger, args[0])

			if err := flow.CheckEligibility(cmd.Context()); err != nil {
				if errors.Is(err, review.ErrNotEligible) {
					// The notification already carries the server's reason.
					return nil
				}
				return err
			}
			if flow.Editing() {
				fmt.Fprintln(cmd.OutOrStdout(), "you already reviewed this book; submitting will update your review")
			}

			if rating == 0 && comment == "" {
				var err error
				rating, comment, err = promptReview(cmd)
				if err != nil {
					return err
				}
			}
			flow.SetRating(rating)
			flow.SetComment(comment)

			_, err := flow.Submit(cmd.Context())
			if errors.Is(err, review.ErrValidation) {
				// The warning notification names what is missing.
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "star rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	return cmd
}

func promptReview(cmd *cobra.Command) (int, string, error) {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprint(out, "Rating (1-5): ")
	if !scanner.Scan() {
		return 0, "", fmt.Errorf("read rating: %w", scanner.Err())
	}
	rating, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, "", fmt.Errorf("rating must be a number from 1 to 5")
	}

	fmt.Fprint(out, "Comment: ")
	if !scanner.Scan() {
		return 0, "", fmt.Errorf("read comment: %w", scanner.Err())
	}
	return rating, strings.TrimSpace(scanner.Text()), nil
}
