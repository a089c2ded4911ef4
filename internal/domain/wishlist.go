package domain

import "time"

// WishlistItem represents a book saved in a user's wishlist. The bookId is
// the dedup key: the backend guarantees at most one item per (user, book)
// pair and the client must treat it the same way locally.
type WishlistItem struct {
	BookID   string    `json:"bookId"`
	BookName string    `json:"bookName"`
	Author   string    `json:"bookAuthor,omitempty"`
	Image    string    `json:"bookImage,omitempty"`
	Price    float64   `json:"bookPrice"`
	AddedAt  time.Time `json:"addedAt,omitempty"`
}

// WishlistDraft is the client-supplied part of a wishlist item; addedAt is
// assigned server-side on creation.
type WishlistDraft struct {
	BookID   string  `json:"bookId"`
	BookName string  `json:"bookName"`
	Image    string  `json:"bookImage,omitempty"`
	Price    float64 `json:"bookPrice"`
}
