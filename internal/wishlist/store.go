// Package wishlist holds the client-side wishlist state and keeps it in
// sync with the backend. Mutations follow a deliberate asymmetry: adding a
// book re-fetches the whole list from the server, while removing one edits
// local state optimistically without a round trip.
package wishlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/internal/notify"
	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
)

// API is the slice of the remote client the store depends on.
type API interface {
	ListWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddWishlistItem(ctx context.Context, draft domain.WishlistDraft) error
	RemoveWishlistItem(ctx context.Context, bookID string) error
	ClearWishlist(ctx context.Context) (int, error)
	CheckWishlist(ctx context.Context, bookID string) (bool, error)
}

// Auth reports whether a user is currently signed in. Satisfied by
// *session.Session.
type Auth interface {
	Authenticated() bool
}

// Snapshot is an immutable view of the store published to subscribers after
// every state change.
type Snapshot struct {
	Items   []domain.WishlistItem
	Loading bool
	Err     string
}

// Result reports the outcome of a mutation to the caller. The same message
// also goes out on the notification channel.
type Result struct {
	OK      bool
	Message string
}

// subscriberBuffer bounds each subscriber channel; a subscriber that falls
// behind misses intermediate snapshots rather than blocking the store.
const subscriberBuffer = 16

// Store is the synchronized wishlist state. All methods are safe for
// concurrent use.
type Store struct {
	api      API
	auth     Auth
	cache    Cache
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	items   []domain.WishlistItem
	loading bool
	errMsg  string

	subs   map[int]chan Snapshot
	nextID int
}

// NewStore builds a store seeded from the cache. Cache read failures are
// logged and ignored; the store then starts empty. Loading and error state
// always start clean regardless of what was cached.
func NewStore(api API, auth Auth, cache Cache, notifier notify.Notifier, logger *slog.Logger) *Store {
	s := &Store{
		api:      api,
		auth:     auth,
		cache:    cache,
		notifier: notifier,
		logger:   logger.With("component", "wishlist"),
		subs:     make(map[int]chan Snapshot),
	}
	items, err := cache.Load()
	if err != nil {
		s.logger.Warn("wishlist cache unreadable, starting empty", "error", err)
		items = nil
	}
	s.items = items
	return s
}

// Subscribe registers a listener for state snapshots. The returned cancel
// function removes the subscription and closes the channel; safe to call
// more than once.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count returns the number of items locally, without touching the network.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Contains reports whether the book is in the local wishlist state.
func (s *Store) Contains(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// Fetch replaces local state with the server's wishlist. On failure the
// items are reset to empty rather than left stale, the error message is
// recorded, and an error notification goes out.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.publishLocked()
	s.mu.Unlock()

	items, err := s.api.ListWishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.items = nil
		s.errMsg = apperrors.Message(err)
		s.publishLocked()
		s.logger.Error("wishlist fetch failed", "error", err)
		s.notifier.Error(s.errMsg)
		return err
	}
	s.items = items
	s.errMsg = ""
	s.publishLocked()
	s.saveCacheLocked()
	return nil
}

// Add saves a book to the wishlist. On success the whole list is re-fetched
// from the server so local state reflects server truth (including the
// server-assigned addedAt); there is no optimistic insert. On failure local
// items are untouched.
func (s *Store) Add(ctx context.Context, draft domain.WishlistDraft) Result {
	if r, ok := s.requireAuth(); !ok {
		return r
	}

	if err := s.api.AddWishlistItem(ctx, draft); err != nil {
		msg := apperrors.Message(err)
		s.logger.Error("wishlist add failed", "bookId", draft.BookID, "error", err)
		s.notifier.Error(msg)
		return Result{OK: false, Message: msg}
	}

	// Reconcile rather than insert locally. A failed re-fetch here follows
	// the normal fetch failure path; the add itself still succeeded.
	_ = s.Fetch(ctx)

	msg := draft.BookName + " added to wishlist"
	s.notifier.Success(msg)
	return Result{OK: true, Message: msg}
}

// Remove deletes one book from the wishlist. On success the item is removed
// from local state directly, with no re-fetch. On failure state is
// unchanged.
func (s *Store) Remove(ctx context.Context, bookID string) Result {
	if r, ok := s.requireAuth(); !ok {
		return r
	}

	if err := s.api.RemoveWishlistItem(ctx, bookID); err != nil {
		msg := apperrors.Message(err)
		s.logger.Error("wishlist remove failed", "bookId", bookID, "error", err)
		s.notifier.Error(msg)
		return Result{OK: false, Message: msg}
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.BookID == bookID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.errMsg = ""
	s.publishLocked()
	s.saveCacheLocked()
	s.mu.Unlock()

	msg := "removed from wishlist"
	s.notifier.Success(msg)
	return Result{OK: true, Message: msg}
}

// Clear empties the wishlist on the server and locally.
func (s *Store) Clear(ctx context.Context) Result {
	if r, ok := s.requireAuth(); !ok {
		return r
	}

	count, err := s.api.ClearWishlist(ctx)
	if err != nil {
		msg := apperrors.Message(err)
		s.logger.Error("wishlist clear failed", "error", err)
		s.notifier.Error(msg)
		return Result{OK: false, Message: msg}
	}

	s.mu.Lock()
	s.items = nil
	s.errMsg = ""
	s.publishLocked()
	if err := s.cache.Clear(); err != nil {
		s.logger.Warn("wishlist cache clear failed", "error", err)
	}
	s.mu.Unlock()

	msg := fmt.Sprintf("removed %d books from wishlist", count)
	s.notifier.Success(msg)
	return Result{OK: true, Message: msg}
}

// CheckRemote asks the server whether one book is wishlisted. Empty and
// literal "undefined" IDs come from detail pages rendered before their data
// arrives; those answer false without a network call.
func (s *Store) CheckRemote(ctx context.Context, bookID string) (bool, error) {
	if bookID == "" || bookID == "undefined" {
		return false, nil
	}
	return s.api.CheckWishlist(ctx, bookID)
}

// requireAuth short-circuits mutations for signed-out users with a warning
// notification, before any network dispatch.
func (s *Store) requireAuth() (Result, bool) {
	if s.auth.Authenticated() {
		return Result{}, true
	}
	msg := "please sign in to manage your wishlist"
	s.notifier.Warning(msg)
	return Result{OK: false, Message: msg}, false
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:   append([]domain.WishlistItem(nil), s.items...),
		Loading: s.loading,
		Err:     s.errMsg,
	}
}

func (s *Store) publishLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) saveCacheLocked() {
	if err := s.cache.Save(append([]domain.WishlistItem(nil), s.items...)); err != nil {
		s.logger.Warn("wishlist cache write failed", "error", err)
	}
}
