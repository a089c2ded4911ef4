package api

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcourier/bookcourier/internal/apitest"
	"github.com/bookcourier/bookcourier/internal/domain"
	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
	"github.com/bookcourier/bookcourier/pkg/httpclient"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() string { return s.token }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(srv *apitest.Server, token string) *Client {
	doer := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		MaxConnsPerHost: 10,
	})
	return NewClient(srv.URL, doer, staticTokens{token: token}, newTestLogger())
}

func seededItem(bookID, name string, price float64) domain.WishlistItem {
	return domain.WishlistItem{
		BookID:   bookID,
		BookName: name,
		Price:    price,
		AddedAt:  time.Now().UTC(),
	}
}

// --- Wishlist ---

func TestListWishlist_Success(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist(seededItem("b1", "Dune", 20), seededItem("b2", "Hyperion", 15))

	client := newTestClient(srv, "tok")

	items, err := client.ListWishlist(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b1", items[0].BookID)
	assert.Equal(t, "Dune", items[0].BookName)
}

func TestListWishlist_Empty(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	items, err := client.ListWishlist(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListWishlist_NotSignedIn(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "")

	_, err := client.ListWishlist(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotSignedIn)
	// The request must be rejected before reaching the network.
	assert.Zero(t, srv.Requests("GET /wishlist/my"))
}

func TestAddWishlistItem_Success(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	err := client.AddWishlistItem(context.Background(), domain.WishlistDraft{
		BookID:   "b1",
		BookName: "Dune",
		Price:    20,
	})

	require.NoError(t, err)
	require.Len(t, srv.WishlistItems(), 1)
	assert.False(t, srv.WishlistItems()[0].AddedAt.IsZero())
}

func TestAddWishlistItem_Duplicate(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist(seededItem("b1", "Dune", 20))

	client := newTestClient(srv, "tok")

	err := client.AddWishlistItem(context.Background(), domain.WishlistDraft{BookID: "b1", BookName: "Dune"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "book already in wishlist", apperrors.Message(err))
}

func TestRemoveWishlistItem_NotFound(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	err := client.RemoveWishlistItem(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClearWishlist_ReturnsDeletedCount(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist(seededItem("b1", "Dune", 20), seededItem("b2", "Hyperion", 15))

	client := newTestClient(srv, "tok")

	count, err := client.ClearWishlist(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, srv.WishlistItems())
}

func TestCheckWishlist(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist(seededItem("b1", "Dune", 20))

	client := newTestClient(srv, "tok")

	in, err := client.CheckWishlist(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = client.CheckWishlist(context.Background(), "b9")
	require.NoError(t, err)
	assert.False(t, in)
}

// --- Orders ---

func TestCreateOrder_Success(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	order, err := client.CreateOrder(context.Background(), domain.OrderDraft{
		BookID:        "b1",
		BookName:      "Dune",
		BookPrice:     20,
		UserName:      "Paul",
		UserEmail:     "paul@arrakis.example",
		Phone:         "+880171234567",
		Address:       "House 12, Road 5, Dhaka",
		PaymentMethod: domain.PaymentCashOnDelivery,
	}, "key-1")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentUnpaid, order.PaymentStatus)
	assert.False(t, order.OrderDate.IsZero())
}

func TestCreateOrder_IdempotencyKeyDedupes(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")
	draft := domain.OrderDraft{BookID: "b1", BookName: "Dune", PaymentMethod: domain.PaymentCashOnDelivery}

	first, err := client.CreateOrder(context.Background(), draft, "key-dup")
	require.NoError(t, err)
	second, err := client.CreateOrder(context.Background(), draft, "key-dup")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, srv.Orders(), 1)
}

func TestCreateOrder_ServerError(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.Fail("POST /orders", 500, "order creation failed")

	client := newTestClient(srv, "tok")

	order, err := client.CreateOrder(context.Background(), domain.OrderDraft{BookID: "b1"}, "")

	assert.Nil(t, order)
	require.Error(t, err)
	assert.Contains(t, apperrors.Message(err), "order creation failed")
}

func TestUpdateOrderStatus(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedOrders(domain.Order{ID: "o1", Status: domain.OrderPending})

	client := newTestClient(srv, "tok")

	order, err := client.UpdateOrderStatus(context.Background(), "o1", domain.OrderShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, order.Status)
}

func TestUpdateOrderStatus_Invalid(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedOrders(domain.Order{ID: "o1", Status: domain.OrderPending})

	client := newTestClient(srv, "tok")

	_, err := client.UpdateOrderStatus(context.Background(), "o1", "teleported")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMyOrders(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedOrders(domain.Order{ID: "o1"}, domain.Order{ID: "o2"})

	client := newTestClient(srv, "tok")

	orders, err := client.MyOrders(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

// --- Books ---

func TestListBooks(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedBooks(
		domain.Book{ID: "x1", Name: "Foo", Price: 15},
		domain.Book{ID: "x2", Name: "Bar", Price: 25},
	)

	client := newTestClient(srv, "")

	books, err := client.ListBooks(context.Background(), BookFilter{})

	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestGetBook_NotFound(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "")

	_, err := client.GetBook(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBookFilter_Query(t *testing.T) {
	assert.Equal(t, "", BookFilter{}.query())
	assert.Equal(t, "?genre=scifi", BookFilter{Genre: "scifi"}.query())
	assert.Contains(t, BookFilter{Genre: "scifi", Sort: "price"}.query(), "sort=price")
}

// --- Reviews ---

func TestCheckReviewEligibility(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedEligibility("b1", domain.ReviewEligibility{Eligible: true})

	client := newTestClient(srv, "tok")

	elig, err := client.CheckReviewEligibility(context.Background(), "b1")

	require.NoError(t, err)
	assert.True(t, elig.Eligible)
}

func TestCheckReviewEligibility_NotEligible(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	elig, err := client.CheckReviewEligibility(context.Background(), "b1")

	require.NoError(t, err)
	assert.False(t, elig.Eligible)
	assert.NotEmpty(t, elig.Reason)
}

func TestSubmitAndUpdateReview(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newTestClient(srv, "tok")

	review, err := client.SubmitReview(context.Background(), domain.ReviewDraft{
		BookID:  "b1",
		Rating:  4,
		Comment: "solid delivery, great book",
	})
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, 4, review.Rating)

	updated, err := client.UpdateReview(context.Background(), review.ID, domain.ReviewDraft{
		BookID:  "b1",
		Rating:  5,
		Comment: "even better on a re-read",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

// --- Invoice normalization ---

func TestGetInvoice_CanonicalFields(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedInvoice("o1", map[string]any{
		"orderId":       "o1",
		"invoiceNumber": "INV-001",
		"issuedAt":      "2026-08-01T10:00:00Z",
		"customerName":  "Paul",
		"customerEmail": "paul@arrakis.example",
		"bookName":      "Dune",
		"amount":        20.5,
		"paymentMethod": domain.PaymentCashOnDelivery,
		"paymentStatus": domain.PaymentUnpaid,
	})

	client := newTestClient(srv, "tok")

	inv, err := client.GetInvoice(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, "INV-001", inv.InvoiceNumber)
	assert.Equal(t, "Paul", inv.CustomerName)
	assert.Equal(t, 20.5, inv.Amount)
	assert.Equal(t, 2026, inv.IssuedAt.Year())
}

func TestGetInvoice_AlternateFieldNames(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedInvoice("o2", map[string]any{
		"order_id":    "o2",
		"invoiceNo":   "INV-002",
		"invoiceDate": "2026-08-02",
		"userName":    "Leto",
		"userEmail":   "leto@arrakis.example",
		"title":       "Messiah",
		"total":       12,
	})

	client := newTestClient(srv, "tok")

	inv, err := client.GetInvoice(context.Background(), "o2")

	require.NoError(t, err)
	assert.Equal(t, "o2", inv.OrderID)
	assert.Equal(t, "INV-002", inv.InvoiceNumber)
	assert.Equal(t, "Leto", inv.CustomerName)
	assert.Equal(t, "leto@arrakis.example", inv.CustomerEmail)
	assert.Equal(t, "Messiah", inv.BookName)
	assert.Equal(t, float64(12), inv.Amount)
	assert.Equal(t, time.August, inv.IssuedAt.Month())
}

func TestNormalizeInvoice_EmptyPayload(t *testing.T) {
	inv := normalizeInvoice(rawInvoice{})
	assert.Zero(t, inv.Amount)
	assert.True(t, inv.IssuedAt.IsZero())
	assert.Empty(t, inv.InvoiceNumber)
}
