package order

import (
	"context"
	"math/big"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/metrics"
)

type CreateOrderInput struct {
	Buyer             string
	ProductID         uint64
	Seller            string
	Quantity          uint64
	Amount            *big.Int
	PaymentToken      string
	PaymentMethod     domain.PaymentMethod
	ExternalPaymentID string
}

type OrderUsecase interface {
	CreateOrder(input *CreateOrderInput) (*domain.Order, error)
	FundEscrow(caller string, orderID uint64, amount *big.Int) (*domain.Order, error)
	MarkShipped(caller string, orderID uint64, trackingNumber string) (*domain.Order, error)
	ConfirmDelivery(caller string, orderID uint64) (*domain.Order, error)
	CanBuyerConfirmDelivery(caller string, orderID uint64) (bool, error)
	ReleaseFundsToSeller(caller string, orderID uint64, amount *big.Int) (*domain.Order, error)
	RefundBuyer(caller string, orderID uint64, amount *big.Int) (*domain.Order, error)
	CancelOrder(caller string, orderID uint64) (*domain.Order, error)

	AutoReleaseIfEligible(orderID uint64) (*domain.Order, error)
	AutoReleaseEligibleOrders(ctx context.Context) error

	GetOrderByID(orderID uint64) (*domain.Order, error)
	GetOrdersByBuyer(buyer string, offset, limit int) ([]*domain.Order, int64, error)
	GetOrdersBySeller(seller string, offset, limit int) ([]*domain.Order, int64, error)
	CountOrders() (int64, error)
}

type DefaultOrderUsecase struct {
	store             domain.Store
	publisher         domain.PublisherPort
	metrics           *metrics.EscrowMetrics
	autoReleaseWindow time.Duration
	maxPageLimit      int

	// now is swappable so deadline tests do not sleep through the window.
	now          func() time.Time
	newReference func() string
}

func NewDefaultOrderUsecase(
	store domain.Store,
	publisher domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics,
	autoReleaseWindow time.Duration,
	maxPageLimit int,
) (*DefaultOrderUsecase, error) {
	refGenerator, err := nanoid.Standard(12)
	if err != nil {
		return nil, err
	}
	if autoReleaseWindow <= 0 {
		autoReleaseWindow = 7 * 24 * time.Hour
	}
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &DefaultOrderUsecase{
		store:             store,
		publisher:         publisher,
		metrics:           escrowMetrics,
		autoReleaseWindow: autoReleaseWindow,
		maxPageLimit:      maxPageLimit,
		now:               time.Now,
		newReference:      refGenerator,
	}, nil
}

// SetClock overrides the time source. Test hook.
func (uc *DefaultOrderUsecase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *DefaultOrderUsecase) clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > uc.maxPageLimit {
		return uc.maxPageLimit
	}
	return limit
}
