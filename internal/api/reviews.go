package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// CheckReviewEligibility asks whether the signed-in user may review a book.
// GET /reviews/eligibility/{bookId}
func (c *Client) CheckReviewEligibility(ctx context.Context, bookID string) (*domain.ReviewEligibility, error) {
	var resp struct {
		envelope
		domain.ReviewEligibility
	}
	if err := c.getJSON(ctx, "/reviews/eligibility/"+url.PathEscape(bookID), true, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	elig := resp.ReviewEligibility
	return &elig, nil
}

// SubmitReview creates a new review.
// POST /reviews
func (c *Client) SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Review, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/reviews", draft, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		envelope
		Review *domain.Review `json:"review"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	return resp.Review, nil
}

// UpdateReview replaces the content of an existing review.
// PUT /reviews/{id}
func (c *Client) UpdateReview(ctx context.Context, reviewID string, draft domain.ReviewDraft) (*domain.Review, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/reviews/"+url.PathEscape(reviewID), draft, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		envelope
		Review *domain.Review `json:"review"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	return resp.Review, nil
}
