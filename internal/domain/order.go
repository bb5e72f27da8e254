package domain

import (
	"math/big"
	"time"
)

type OrderStatus string

const (
	StatusCreated     OrderStatus = "CREATED"
	StatusPendingFund OrderStatus = "PENDING_FUND"
	StatusFunded      OrderStatus = "FUNDED"
	StatusShipped     OrderStatus = "SHIPPED"
	StatusDelivered   OrderStatus = "DELIVERED"
	StatusDisputed    OrderStatus = "DISPUTED"
	StatusCompleted   OrderStatus = "COMPLETED"
	StatusCancelled   OrderStatus = "CANCELLED"
	StatusRefunded    OrderStatus = "REFUNDED"
)

// Code returns the numeric status code of the original contract ABI. The
// storefront still indexes statuses by these values.
func (s OrderStatus) Code() int {
	switch s {
	case StatusCreated:
		return 0
	case StatusPendingFund:
		return 1
	case StatusFunded:
		return 2
	case StatusShipped:
		return 3
	case StatusDelivered:
		return 4
	case StatusDisputed:
		return 5
	case StatusCompleted:
		return 6
	case StatusCancelled:
		return 7
	case StatusRefunded:
		return 8
	default:
		return -1
	}
}

func (s OrderStatus) Valid() bool {
	return s.Code() >= 0
}

// Terminal reports whether the status permits no further transitions.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	// PaymentMethodToken settles through the internal token vault.
	PaymentMethodToken PaymentMethod = "TOKEN"
	// PaymentMethodGateway correlates settlement with an off-platform
	// payment gateway via ExternalPaymentID. No vault funds move.
	PaymentMethodGateway PaymentMethod = "GATEWAY"
)

type Order struct {
	ID                  uint64
	Reference           string
	Buyer               string
	Seller              string
	ProductID           uint64
	Quantity            uint64
	Amount              *big.Int
	EscrowBalance       *big.Int
	PaymentToken        string
	PaymentMethod       PaymentMethod
	ExternalPaymentID   string
	Status              OrderStatus
	TrackingNumber      string
	CreatedAt           time.Time
	FundedAt            *time.Time
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	AutoReleaseDeadline *time.Time
	UpdatedAt           time.Time
}

type OrderRepository interface {
	CreateOrder(order *Order) error
	GetOrderByID(orderID uint64) (*Order, error)
	UpdateOrder(order *Order) error

	// TransitionStatus flips the status from -> to in a single guarded
	// update. Returns ErrInvalidStateTransition when the stored status no
	// longer matches from, which is how two racing callers are serialized.
	TransitionStatus(orderID uint64, from, to OrderStatus) error

	GetOrdersByBuyer(buyer string, offset, limit int) ([]*Order, int64, error)
	GetOrdersBySeller(seller string, offset, limit int) ([]*Order, int64, error)
	CountOrders() (int64, error)

	// FindAutoReleasable returns delivered orders whose auto-release
	// deadline has passed at the given instant.
	FindAutoReleasable(now time.Time) ([]*Order, error)
}
