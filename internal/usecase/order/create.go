package order

import (
	"fmt"
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// CreateOrder registers a buyer's intent to purchase. Inventory is NOT
// reserved here: reservation happens at funding so unfunded intents never
// hold stock.
func (uc *DefaultOrderUsecase) CreateOrder(input *CreateOrderInput) (*domain.Order, error) {
	if input.Buyer == "" {
		return nil, fmt.Errorf("%w: buyer address required", domain.ErrInvalidArgument)
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Amount == nil || input.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidArgument)
	}
	switch input.PaymentMethod {
	case domain.PaymentMethodToken, domain.PaymentMethodGateway:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidArgument, input.PaymentMethod)
	}

	var created *domain.Order
	err := uc.store.InTx(func(s domain.Store) error {
		product, err := s.Listings().GetListingByID(input.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: listing %d", domain.ErrListingInactive, product.ID)
		}
		if product.Seller != input.Seller {
			return fmt.Errorf("%w: seller does not match listing", domain.ErrInvalidArgument)
		}
		// Advisory only: stock is reserved atomically at funding time.
		if product.Inventory < input.Quantity {
			return fmt.Errorf("%w: listing %d has %d, requested %d",
				domain.ErrInsufficientInventory, product.ID, product.Inventory, input.Quantity)
		}

		paymentToken := input.PaymentToken
		if input.PaymentMethod == domain.PaymentMethodToken {
			// Token-settled orders pay exactly the listed price.
			expected := new(big.Int).Mul(product.Price, new(big.Int).SetUint64(input.Quantity))
			if input.Amount.Cmp(expected) != 0 {
				return fmt.Errorf("%w: declared %s, listing price total %s",
					domain.ErrAmountMismatch, input.Amount, expected)
			}
			if paymentToken == "" {
				paymentToken = product.PaymentToken
			}
			if paymentToken != product.PaymentToken {
				return fmt.Errorf("%w: payment token %s, listing requires %s",
					domain.ErrAmountMismatch, paymentToken, product.PaymentToken)
			}
		}

		now := uc.now()
		created = &domain.Order{
			Reference:         uc.newReference(),
			Buyer:             input.Buyer,
			Seller:            input.Seller,
			ProductID:         input.ProductID,
			Quantity:          input.Quantity,
			Amount:            input.Amount,
			EscrowBalance:     big.NewInt(0),
			PaymentToken:      paymentToken,
			PaymentMethod:     input.PaymentMethod,
			ExternalPaymentID: input.ExternalPaymentID,
			// CREATED exists only transiently: every stored order is
			// immediately awaiting funds.
			Status:    domain.StatusPendingFund,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.Orders().CreateOrder(created)
	})
	if err != nil {
		uc.recordError("create", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderCreated, created, nil)
	uc.recordOrderCreated(created)
	return created, nil
}
