package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// ListWishlist fetches the full wishlist for the signed-in user.
// GET /wishlist/my
func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var resp struct {
		envelope
		Wishlist []domain.WishlistItem `json:"wishlist"`
	}
	if err := c.getJSON(ctx, "/wishlist/my", true, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	if resp.Wishlist == nil {
		resp.Wishlist = []domain.WishlistItem{}
	}
	return resp.Wishlist, nil
}

// AddWishlistItem saves a book to the signed-in user's wishlist. The server
// assigns addedAt and enforces uniqueness per (user, book).
// POST /wishlist
func (c *Client) AddWishlistItem(ctx context.Context, draft domain.WishlistDraft) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/wishlist", draft, true)
	if err != nil {
		return err
	}

	var resp envelope
	if err := c.do(ctx, req, &resp); err != nil {
		return err
	}
	if err := resp.reject(); err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "wishlist item added",
		slog.String("book_id", draft.BookID),
	)
	return nil
}

// RemoveWishlistItem deletes one book from the wishlist.
// DELETE /wishlist/{bookId}
func (c *Client) RemoveWishlistItem(ctx context.Context, bookID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(bookID), nil, true)
	if err != nil {
		return err
	}

	var resp envelope
	if err := c.do(ctx, req, &resp); err != nil {
		return err
	}
	return resp.reject()
}

// ClearWishlist deletes every wishlist item and returns how many the server
// removed.
// DELETE /wishlist/clear/all
func (c *Client) ClearWishlist(ctx context.Context) (int, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, "/wishlist/clear/all", nil, true)
	if err != nil {
		return 0, err
	}

	var resp struct {
		envelope
		DeletedCount int `json:"deletedCount"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return 0, err
	}
	if err := resp.reject(); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

// CheckWishlist asks the server whether a book is in the wishlist. This is
// the authoritative check, independent of any local state.
// GET /wishlist/check/{bookId}
func (c *Client) CheckWishlist(ctx context.Context, bookID string) (bool, error) {
	var resp struct {
		envelope
		InWishlist bool `json:"inWishlist"`
	}
	if err := c.getJSON(ctx, "/wishlist/check/"+url.PathEscape(bookID), true, &resp); err != nil {
		return false, err
	}
	if err := resp.reject(); err != nil {
		return false, err
	}
	return resp.InWishlist, nil
}
