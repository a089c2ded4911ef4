package domain

import "time"

// Order status constants, assigned server-side.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment status constants.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Payment method constants. Only cash on delivery is accepted today; the
// others are displayed as disabled options.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCard           = "card"
	PaymentMobileBanking  = "mobile_banking"
)

// ValidOrderStatuses returns the set of valid order statuses.
func ValidOrderStatuses() []string {
	return []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

// IsValidOrderStatus checks whether the given status string is a valid order status.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID                  string    `json:"_id"`
	BookID              string    `json:"bookId"`
	BookName            string    `json:"bookName"`
	BookImage           string    `json:"bookImage,omitempty"`
	BookPrice           float64   `json:"bookPrice"`
	UserName            string    `json:"userName"`
	UserEmail           string    `json:"userEmail"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	PaymentMethod       string    `json:"paymentMethod"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Status              string    `json:"status"`
	PaymentStatus       string    `json:"paymentStatus"`
	OrderDate           time.Time `json:"orderDate"`
}

// OrderDraft holds the delivery details collected by the order wizard
// before submission.
type OrderDraft struct {
	BookID              string  `json:"bookId"`
	BookName            string  `json:"bookName"`
	BookImage           string  `json:"bookImage,omitempty"`
	BookPrice           float64 `json:"bookPrice"`
	UserName            string  `json:"userName"`
	UserEmail           string  `json:"userEmail"`
	Phone               string  `json:"phone"`
	Address             string  `json:"address"`
	PaymentMethod       string  `json:"paymentMethod"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}
