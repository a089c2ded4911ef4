package api

import (
	"context"
	"net/url"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// BookFilter narrows a catalog listing. Empty fields are not sent.
type BookFilter struct {
	Genre  string
	Author string
	Search string
	Sort   string // title, price, rating
}

// query encodes the filter as URL parameters.
func (f BookFilter) query() string {
	q := url.Values{}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.Author != "" {
		q.Set("author", f.Author)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListBooks fetches the catalog, optionally filtered. The catalog is
// public: no token is required or attached.
// GET /books
func (c *Client) ListBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error) {
	var resp struct {
		envelope
		Books []domain.Book `json:"books"`
	}
	if err := c.getJSON(ctx, "/books"+filter.query(), false, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	if resp.Books == nil {
		resp.Books = []domain.Book{}
	}
	return resp.Books, nil
}

// GetBook fetches one catalog entry.
// GET /books/{id}
func (c *Client) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var resp struct {
		envelope
		Book *domain.Book `json:"book"`
	}
	if err := c.getJSON(ctx, "/books/"+url.PathEscape(bookID), false, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	return resp.Book, nil
}
