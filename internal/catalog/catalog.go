// Package catalog is the read side of the book listing: it fetches books
// through the API client and applies the filtering and sorting the
// presentation layer asks for.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/bookcourier/bookcourier/internal/api"
	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/pkg/pagination"
)

// Sort orders for List.
const (
	SortTitle     = "title"
	SortPriceAsc  = "price"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// Filter narrows the catalog listing. Genre and Search are forwarded to
// the server; Author and MaxPrice are applied client-side.
type Filter struct {
	Genre    string
	Author   string
	Search   string
	MaxPrice float64
	Sort     string
}

// API is the slice of the remote client the catalog depends on.
type API interface {
	ListBooks(ctx context.Context, filter api.BookFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)
}

// Service lists and fetches books.
type Service struct {
	api API
}

// NewService builds a catalog service over the API client.
func NewService(apiClient API) *Service {
	return &Service{api: apiClient}
}

// List returns books matching the filter in the requested order.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Book, error) {
	books, err := s.api.ListBooks(ctx, api.BookFilter{
		Genre:  f.Genre,
		Search: f.Search,
	})
	if err != nil {
		return nil, err
	}

	filtered := books[:0:0]
	for _, b := range books {
		if f.Author != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(f.Author)) {
			continue
		}
		if f.MaxPrice > 0 && b.Price > f.MaxPrice {
			continue
		}
		filtered = append(filtered, b)
	}

	sortBooks(filtered, f.Sort)
	return filtered, nil
}

// ListPage returns one page of the filtered, sorted listing. The backend
// returns the whole collection, so paging happens here.
func (s *Service) ListPage(ctx context.Context, f Filter, params pagination.Params) (pagination.Result[domain.Book], error) {
	books, err := s.List(ctx, f)
	if err != nil {
		return pagination.Result[domain.Book]{}, err
	}
	return pagination.Paginate(books, params), nil
}

// Get fetches one book's detail.
func (s *Service) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.api.GetBook(ctx, bookID)
}

func sortBooks(books []domain.Book, order string) {
	switch order {
	case SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Name) < strings.ToLower(books[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price < books[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price > books[j].Price
		})
	case SortRating:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Rating > books[j].Rating
		})
	}
}
