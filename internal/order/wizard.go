// Package order implements the order placement wizard: a small state
// machine that collects delivery details, confirms them, and submits a
// single-book order to the backend.
package order

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bookcourier/bookcourier/internal/domain"
	"github.com/bookcourier/bookcourier/internal/notify"
	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
)

// Stage is a wizard state. Transitions are Details -> Confirm ->
// Submitting -> Success, with Confirm -> Details on Back and
// Submitting -> Details on a failed submit.
type Stage string

const (
	StageDetails    Stage = "details"
	StageConfirm    Stage = "confirm"
	StageSubmitting Stage = "submitting"
	StageSuccess    Stage = "success"
)

// Details holds the delivery form fields.
type Details struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Instructions string
}

// PaymentMethods lists the methods shown to the user. Only cash on
// delivery is currently accepted; the others are displayed but disabled.
func PaymentMethods() []string {
	return []string{
		domain.PaymentCashOnDelivery,
		domain.PaymentCard,
		domain.PaymentMobileBanking,
	}
}

var (
	// ErrSubmitting is returned when an action is rejected because a
	// submission is in flight. Closing is also refused in this state.
	ErrSubmitting = errors.New("order submission in progress")

	// ErrWrongStage is returned when an operation is not valid for the
	// wizard's current stage.
	ErrWrongStage = errors.New("not available at this stage")

	// ErrAlreadySubmitted guards against a second submission from the same
	// wizard session after one already succeeded.
	ErrAlreadySubmitted = errors.New("order already placed")

	// ErrValidation is returned by Next when the details do not validate;
	// the per-field messages are in FieldErrors.
	ErrValidation = errors.New("delivery details are incomplete")
)

// API is the slice of the remote client the wizard depends on.
type API interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft, idempotencyKey string) (*domain.Order, error)
}

// Wizard drives one order for one book. Opening a wizard for a new book
// always starts a fresh session: Details stage, identity-prefilled
// contact fields, no stale field errors. Safe for concurrent use.
type Wizard struct {
	api       API
	notifier  notify.Notifier
	logger    *slog.Logger
	onSuccess func(domain.Order)

	mu        sync.Mutex
	book      domain.Book
	identity  Identity
	stage     Stage
	details   Details
	payment   string
	fieldErrs map[string]string

	// idemKey is generated once per wizard session so a retried submit
	// after a transport failure cannot create a duplicate order.
	idemKey   string
	submitted bool
	order     *domain.Order
}

// Identity prefills the contact fields from the signed-in user.
type Identity struct {
	Name  string
	Email string
}

// NewWizard opens a fresh wizard for the given book. onSuccess may be nil.
func NewWizard(apiClient API, notifier notify.Notifier, logger *slog.Logger, book domain.Book, identity Identity, onSuccess func(domain.Order)) *Wizard {
	w := &Wizard{
		api:       apiClient,
		notifier:  notifier,
		logger:    logger.With("component", "order"),
		onSuccess: onSuccess,
		book:      book,
		identity:  identity,
	}
	w.reset()
	return w
}

// reset returns the wizard to a pristine Details stage. Caller must not
// hold the mutex for NewWizard; Close takes it.
func (w *Wizard) reset() {
	w.stage = StageDetails
	w.details = Details{
		Name:  w.identity.Name,
		Email: w.identity.Email,
	}
	w.payment = domain.PaymentCashOnDelivery
	w.fieldErrs = make(map[string]string)
	w.idemKey = uuid.New().String()
	w.submitted = false
	w.order = nil
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// Book returns the book this wizard orders.
func (w *Wizard) Book() domain.Book {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.book
}

// Details returns the current form values.
func (w *Wizard) Details() Details {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.details
}

// FieldErrors returns the current per-field validation messages.
func (w *Wizard) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := make(map[string]string, len(w.fieldErrs))
	for k, v := range w.fieldErrs {
		errs[k] = v
	}
	return errs
}

// Order returns the placed order once the wizard reached Success.
func (w *Wizard) Order() *domain.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order
}

// Total returns the amount shown on the success screen. Orders carry a
// single book, so the total is the book price.
func (w *Wizard) Total() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.book.Price
}

// Each setter clears only its own field error, so fixing one field does
// not hide problems still present in the others.

func (w *Wizard) SetName(name string) {
	w.setField(FieldName, func() { w.details.Name = name })
}

func (w *Wizard) SetEmail(email string) {
	w.setField(FieldEmail, func() { w.details.Email = email })
}

func (w *Wizard) SetPhone(phone string) {
	w.setField(FieldPhone, func() { w.details.Phone = phone })
}

func (w *Wizard) SetAddress(address string) {
	w.setField(FieldAddress, func() { w.details.Address = address })
}

func (w *Wizard) SetInstructions(instructions string) {
	w.setField(FieldInstructions, func() { w.details.Instructions = instructions })
}

// SetPaymentMethod records the chosen method. Anything other than cash on
// delivery is rejected with a field error.
func (w *Wizard) SetPaymentMethod(method string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.fieldErrs, FieldPayment)
	if method != domain.PaymentCashOnDelivery {
		w.fieldErrs[FieldPayment] = "only cash on delivery is currently available"
		return
	}
	w.payment = method
}

func (w *Wizard) setField(field string, apply func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	apply()
	delete(w.fieldErrs, field)
}

// Next advances Details to Confirm when the form validates. On failure the
// wizard stays in Details with field-scoped errors and returns
// ErrValidation.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageDetails {
		return ErrWrongStage
	}
	if errs := validateDetails(w.details); len(errs) > 0 {
		w.fieldErrs = errs
		return ErrValidation
	}
	w.fieldErrs = make(map[string]string)
	w.stage = StageConfirm
	return nil
}

// Back returns from Confirm to Details without losing entered data.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageConfirm {
		return ErrWrongStage
	}
	w.stage = StageDetails
	return nil
}

// Submit places the order. Valid only from Confirm. A session submits at
// most once; the guard lives in the wizard data, not in whatever surface
// renders it. On failure the wizard returns to Details so the user can
// correct and retry under the same idempotency key.
func (w *Wizard) Submit(ctx context.Context) (*domain.Order, error) {
	w.mu.Lock()
	switch {
	case w.stage == StageSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmitting
	case w.submitted:
		w.mu.Unlock()
		return nil, ErrAlreadySubmitted
	case w.stage != StageConfirm:
		w.mu.Unlock()
		return nil, ErrWrongStage
	}
	w.stage = StageSubmitting
	draft := domain.OrderDraft{
		BookID:              w.book.ID,
		BookName:            w.book.Name,
		BookImage:           w.book.Image,
		BookPrice:           w.book.Price,
		UserName:            w.details.Name,
		UserEmail:           w.details.Email,
		Phone:               w.details.Phone,
		Address:             w.details.Address,
		PaymentMethod:       w.payment,
		SpecialInstructions: w.details.Instructions,
	}
	key := w.idemKey
	w.mu.Unlock()

	placed, err := w.api.CreateOrder(ctx, draft, key)

	w.mu.Lock()
	if err != nil {
		w.stage = StageDetails
		w.mu.Unlock()
		msg := apperrors.Message(err)
		w.logger.Error("order submission failed", "bookId", draft.BookID, "error", err)
		w.notifier.Error(msg)
		return nil, err
	}
	w.stage = StageSuccess
	w.submitted = true
	w.order = placed
	onSuccess := w.onSuccess
	w.mu.Unlock()

	w.logger.Info("order placed", "orderId", placed.ID, "bookId", placed.BookID)
	w.notifier.Success("order placed for " + placed.BookName)
	if onSuccess != nil {
		onSuccess(*placed)
	}
	return placed, nil
}

// Close ends the wizard session. It is refused while a submission is in
// flight; closing from Success resets the wizard for reuse with a new
// session.
func (w *Wizard) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitting {
		return ErrSubmitting
	}
	w.reset()
	return nil
}
