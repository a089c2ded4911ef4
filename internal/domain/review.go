package domain

import "time"

// Review is a book review as returned by the backend.
type Review struct {
	ID        string    `json:"_id"`
	BookID    string    `json:"bookId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ReviewDraft is the client-supplied review content.
type ReviewDraft struct {
	BookID  string `json:"bookId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewEligibility reports whether the signed-in user may review a book,
// and why not when they may not (no delivered order, already reviewed).
type ReviewEligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	// ExistingReviewID is set when the user already reviewed the book and
	// should be offered an edit instead.
	ExistingReviewID string `json:"existingReviewId,omitempty"`
}
