// Package review implements the review submission flow. Eligibility is
// decided server-side (a delivered order for the book, no prior review);
// the client checks it up front so users are told why they cannot review
// before they write anything.
package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/internal/notify"
	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
)

// Stage is a review flow state.
type Stage string

const (
	StageEligibility Stage = "eligibility"
	StageCompose     Stage = "compose"
	StageSubmitting  Stage = "submitting"
	StageDone        Stage = "done"
)

var (
	// ErrNotEligible is returned when the server refuses the review; the
	// reason is available from Eligibility().
	ErrNotEligible = errors.New("not eligible to review this book")

	// ErrWrongStage is returned for operations invalid in the current stage.
	ErrWrongStage = errors.New("not available at this stage")

	// ErrSubmitting is returned while a submission is in flight.
	ErrSubmitting = errors.New("review submission in progress")

	// ErrValidation is returned when the draft does not validate.
	ErrValidation = errors.New("review is incomplete")
)

// API is the slice of the remote client the flow depends on.
type API interface {
	CheckReviewEligibility(ctx context.Context, bookID string) (*domain.ReviewEligibility, error)
	SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Review, error)
	UpdateReview(ctx context.Context, reviewID string, draft domain.ReviewDraft) (*domain.Review, error)
}

// Flow drives one review for one book. When the user already reviewed the
// book, the flow switches to edit mode and submits an update instead of a
// new review.
type Flow struct {
	api      API
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	bookID  string
	stage   Stage
	elig    *domain.ReviewEligibility
	rating  int
	comment string
	review  *domain.Review
}

// NewFlow opens a review flow for the given book.
func NewFlow(apiClient API, notifier notify.Notifier, logger *slog.Logger, bookID string) *Flow {
	return &Flow{
		api:      apiClient,
		notifier: notifier,
		logger:   logger.With("component", "review"),
		bookID:   bookID,
		stage:    StageEligibility,
	}
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Eligibility returns the server's answer after CheckEligibility ran.
func (f *Flow) Eligibility() *domain.ReviewEligibility {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elig
}

// Editing reports whether the flow will update an existing review rather
// than create a new one.
func (f *Flow) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elig != nil && f.elig.ExistingReviewID != ""
}

// Review returns the submitted review once the flow reached Done.
func (f *Flow) Review() *domain.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.review
}

// CheckEligibility asks the server whether this user may review the book.
// Eligible users (including those editing a prior review) advance to
// Compose; ineligible users stay put with the server's reason recorded.
func (f *Flow) CheckEligibility(ctx context.Context) error {
	f.mu.Lock()
	if f.stage != StageEligibility {
		f.mu.Unlock()
		return ErrWrongStage
	}
	bookID := f.bookID
	f.mu.Unlock()

	elig, err := f.api.CheckReviewEligibility(ctx, bookID)
	if err != nil {
		f.logger.Error("eligibility check failed", "bookId", bookID, "error", err)
		f.notifier.Error(apperrors.Message(err))
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.elig = elig
	if !elig.Eligible && elig.ExistingReviewID == "" {
		f.notifier.Info(elig.Reason)
		return ErrNotEligible
	}
	f.stage = StageCompose
	return nil
}

// SetRating records the star rating.
func (f *Flow) SetRating(rating int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rating = rating
}

// SetComment records the review text.
func (f *Flow) SetComment(comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comment = comment
}

// validate checks the draft. Rating must be 1 to 5 stars and the comment
// must not be blank.
func (f *Flow) validate() string {
	if f.rating < 1 || f.rating > 5 {
		return "rating must be between 1 and 5 stars"
	}
	if strings.TrimSpace(f.comment) == "" {
		return "review comment must not be empty"
	}
	return ""
}

// Submit sends the review. In edit mode this updates the existing review.
func (f *Flow) Submit(ctx context.Context) (*domain.Review, error) {
	f.mu.Lock()
	switch {
	case f.stage == StageSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitting
	case f.stage != StageCompose:
		f.mu.Unlock()
		return nil, ErrWrongStage
	}
	if msg := f.validate(); msg != "" {
		f.mu.Unlock()
		f.notifier.Warning(msg)
		return nil, ErrValidation
	}
	f.stage = StageSubmitting
	draft := domain.ReviewDraft{
		BookID:  f.bookID,
		Rating:  f.rating,
		Comment: strings.TrimSpace(f.comment),
	}
	existingID := ""
	if f.elig != nil {
		existingID = f.elig.ExistingReviewID
	}
	f.mu.Unlock()

	var (
		review *domain.Review
		err    error
	)
	if existingID != "" {
		review, err = f.api.UpdateReview(ctx, existingID, draft)
	} else {
		review, err = f.api.SubmitReview(ctx, draft)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.stage = StageCompose
		f.logger.Error("review submission failed", "bookId", draft.BookID, "error", err)
		f.notifier.Error(apperrors.Message(err))
		return nil, err
	}
	f.stage = StageDone
	f.review = review
	if existingID != "" {
		f.notifier.Success("review updated")
	} else {
		f.notifier.Success("review submitted")
	}
	return review, nil
}
