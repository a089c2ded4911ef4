package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcourier/bookcourier/internal/api"
	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/pkg/pagination"
)

type fakeAPI struct {
	books      []domain.Book
	lastFilter api.BookFilter
}

func (f *fakeAPI) ListBooks(_ context.Context, filter api.BookFilter) ([]domain.Book, error) {
	f.lastFilter = filter
	return append([]domain.Book(nil), f.books...), nil
}

func (f *fakeAPI) GetBook(_ context.Context, bookID string) (*domain.Book, error) {
	for _, b := range f.books {
		if b.ID == bookID {
			return &b, nil
		}
	}
	return nil, context.Canceled
}

func seed() []domain.Book {
	return []domain.Book{
		{ID: "1", Name: "Dune", Author: "Frank Herbert", Price: 20, Rating: 4.5},
		{ID: "2", Name: "Hyperion", Author: "Dan Simmons", Price: 15, Rating: 4.8},
		{ID: "3", Name: "Anathem", Author: "Neal Stephenson", Price: 30, Rating: 4.1},
	}
}

func TestList_ForwardsServerSideFilter(t *testing.T) {
	fake := &fakeAPI{books: seed()}
	svc := NewService(fake)

	_, err := svc.List(context.Background(), Filter{Genre: "scifi", Search: "dune"})

	require.NoError(t, err)
	assert.Equal(t, "scifi", fake.lastFilter.Genre)
	assert.Equal(t, "dune", fake.lastFilter.Search)
}

func TestList_FiltersByAuthor(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	books, err := svc.List(context.Background(), Filter{Author: "herbert"})

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
}

func TestList_FiltersByMaxPrice(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	books, err := svc.List(context.Background(), Filter{MaxPrice: 20})

	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestList_SortsByTitle(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	books, err := svc.List(context.Background(), Filter{Sort: SortTitle})

	require.NoError(t, err)
	assert.Equal(t, []string{"Anathem", "Dune", "Hyperion"}, titles(books))
}

func TestList_SortsByPrice(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	asc, err := svc.List(context.Background(), Filter{Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyperion", "Dune", "Anathem"}, titles(asc))

	desc, err := svc.List(context.Background(), Filter{Sort: SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anathem", "Dune", "Hyperion"}, titles(desc))
}

func TestList_SortsByRating(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	books, err := svc.List(context.Background(), Filter{Sort: SortRating})

	require.NoError(t, err)
	assert.Equal(t, []string{"Hyperion", "Dune", "Anathem"}, titles(books))
}

func TestList_NoSortKeepsServerOrder(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	books, err := svc.List(context.Background(), Filter{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Hyperion", "Anathem"}, titles(books))
}

func TestListPage(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	result, err := svc.ListPage(context.Background(), Filter{Sort: SortTitle}, pagination.NewParams(2, 2))

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, []string{"Hyperion"}, titles(result.Data))
	assert.False(t, result.HasNext)
}

func TestGet(t *testing.T) {
	svc := NewService(&fakeAPI{books: seed()})

	book, err := svc.Get(context.Background(), "2")

	require.NoError(t, err)
	assert.Equal(t, "Hyperion", book.Name)
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Name
	}
	return out
}
