// Package apitest provides an in-process fake of the BookCourier backend
// for tests. It speaks the same routes and envelopes as the real API so
// client packages can be tested against actual HTTP round-trips instead of
// hand-rolled transport mocks.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// failure is an injected error response for one route.
type failure struct {
	status  int
	message string
}

// Server is a fake BookCourier backend. Mutate its exported fields to seed
// state before (or between) requests; all access is mutex-guarded.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	wishlist []domain.WishlistItem
	books    []domain.Book
	orders   []domain.Order
	reviews  []domain.Review
	elig     map[string]domain.ReviewEligibility
	invoices map[string]map[string]any

	failures map[string]failure
	requests map[string]int

	// ordersByKey maps idempotency keys to previously created orders so a
	// retried create returns the same order instead of a duplicate.
	ordersByKey map[string]string
}

// New starts a fake backend. Call Close when done.
func New() *Server {
	s := &Server{
		elig:        make(map[string]domain.ReviewEligibility),
		invoices:    make(map[string]map[string]any),
		failures:    make(map[string]failure),
		requests:    make(map[string]int),
		ordersByKey: make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/books", s.listBooks)
	r.Get("/books/{bookId}", s.getBook)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/wishlist/my", s.listWishlist)
		r.Post("/wishlist", s.addWishlist)
		r.Delete("/wishlist/clear/all", s.clearWishlist)
		r.Delete("/wishlist/{bookId}", s.removeWishlist)
		r.Get("/wishlist/check/{bookId}", s.checkWishlist)

		r.Post("/orders", s.createOrder)
		r.Get("/orders/my", s.myOrders)
		r.Get("/orders", s.listOrders)
		r.Patch("/orders/{orderId}/status", s.updateOrderStatus)
		r.Get("/orders/{orderId}/invoice", s.getInvoice)

		r.Get("/reviews/eligibility/{bookId}", s.reviewEligibility)
		r.Post("/reviews", s.submitReview)
		r.Put("/reviews/{reviewId}", s.updateReview)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// --- Seeding and inspection helpers ---

// SeedWishlist replaces the server-side wishlist.
func (s *Server) SeedWishlist(items ...domain.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = append([]domain.WishlistItem(nil), items...)
}

// SeedBooks replaces the catalog.
func (s *Server) SeedBooks(books ...domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append([]domain.Book(nil), books...)
}

// SeedOrders replaces the order list.
func (s *Server) SeedOrders(orders ...domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order(nil), orders...)
}

// SeedEligibility sets the review eligibility answer for a book.
func (s *Server) SeedEligibility(bookID string, e domain.ReviewEligibility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elig[bookID] = e
}

// SeedInvoice sets the raw invoice payload returned for an order.
func (s *Server) SeedInvoice(orderID string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[orderID] = payload
}

// Fail makes the given route respond with the error until Unfail is called.
// The route is "METHOD /path" with the concrete path, e.g. "POST /wishlist".
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Unfail removes an injected failure.
func (s *Server) Unfail(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Requests returns how many times the concrete "METHOD /path" was hit.
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// WishlistItems returns a copy of the current server-side wishlist.
func (s *Server) WishlistItems() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistItem(nil), s.wishlist...)
}

// Orders returns a copy of the current server-side orders.
func (s *Server) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}

// --- Middleware ---

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]any{
				"success": false,
				"message": f.message,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "authentication required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Wishlist handlers ---

func (s *Server) listWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]domain.WishlistItem(nil), s.wishlist...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"wishlist": items,
	})
}

func (s *Server) addWishlist(w http.ResponseWriter, r *http.Request) {
	var draft domain.WishlistDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.BookID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "bookId is required",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.wishlist {
		if item.BookID == draft.BookID {
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false,
				"message": "book already in wishlist",
			})
			return
		}
	}
	s.wishlist = append(s.wishlist, domain.WishlistItem{
		BookID:   draft.BookID,
		BookName: draft.BookName,
		Image:    draft.Image,
		Price:    draft.Price,
		AddedAt:  time.Now().UTC(),
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "added to wishlist",
	})
}

func (s *Server) removeWishlist(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.wishlist {
		if item.BookID == bookID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "removed from wishlist",
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"message": "book not in wishlist",
	})
}

func (s *Server) clearWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := len(s.wishlist)
	s.wishlist = nil
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"deletedCount": count,
	})
}

func (s *Server) checkWishlist(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	s.mu.Lock()
	found := false
	for _, item := range s.wishlist {
		if item.BookID == bookID {
			found = true
			break
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"inWishlist": found,
	})
}

// --- Order handlers ---

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var draft domain.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.BookID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "bookId is required",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		if existingID, ok := s.ordersByKey[key]; ok {
			for _, o := range s.orders {
				if o.ID == existingID {
					writeJSON(w, http.StatusOK, map[string]any{
						"success": true,
						"order":   o,
					})
					return
				}
			}
		}
	}

	order := domain.Order{
		ID:                  uuid.New().String(),
		BookID:              draft.BookID,
		BookName:            draft.BookName,
		BookImage:           draft.BookImage,
		BookPrice:           draft.BookPrice,
		UserName:            draft.UserName,
		UserEmail:           draft.UserEmail,
		Phone:               draft.Phone,
		Address:             draft.Address,
		PaymentMethod:       draft.PaymentMethod,
		SpecialInstructions: draft.SpecialInstructions,
		Status:              domain.OrderPending,
		PaymentStatus:       domain.PaymentUnpaid,
		OrderDate:           time.Now().UTC(),
	}
	s.orders = append(s.orders, order)
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		s.ordersByKey[key] = order.ID
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"order":   order,
	})
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	s.listOrders(w, r)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := append([]domain.Order(nil), s.orders...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !domain.IsValidOrderStatus(body.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": fmt.Sprintf("invalid status %q", body.Status),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = body.Status
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"order":   s.orders[i],
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"message": "order not found",
	})
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	s.mu.Lock()
	payload, ok := s.invoices[orderID]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "invoice not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"invoice": payload,
	})
}

// --- Book handlers ---

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	books := append([]domain.Book(nil), s.books...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"books":   books,
	})
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == bookID {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"book":    b,
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"message": "book not found",
	})
}

// --- Review handlers ---

func (s *Server) reviewEligibility(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	s.mu.Lock()
	e, ok := s.elig[bookID]
	s.mu.Unlock()

	if !ok {
		e = domain.ReviewEligibility{Eligible: false, Reason: "no delivered order for this book"}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"eligible":         e.Eligible,
		"reason":           e.Reason,
		"existingReviewId": e.ExistingReviewID,
	})
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	var draft domain.ReviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.BookID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "bookId is required",
		})
		return
	}

	review := domain.Review{
		ID:        uuid.New().String(),
		BookID:    draft.BookID,
		Rating:    draft.Rating,
		Comment:   draft.Comment,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.reviews = append(s.reviews, review)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"review":  review,
	})
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	var draft domain.ReviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid review body",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == reviewID {
			s.reviews[i].Rating = draft.Rating
			s.reviews[i].Comment = draft.Comment
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"review":  s.reviews[i],
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"message": "review not found",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
