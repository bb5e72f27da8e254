package order

import (
	"fmt"
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// RefundBuyer is the seller's voluntary pre-shipment refund: the escrowed
// amount goes back to the buyer and the reserved stock is restored. A nil
// amount refunds the full held balance; a partial amount is rejected since
// a refunded order must hold nothing.
func (uc *DefaultOrderUsecase) RefundBuyer(caller string, orderID uint64, amount *big.Int) (*domain.Order, error) {
	var refunded *domain.Order
	var returned *big.Int
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Seller != caller {
			return fmt.Errorf("%w: only the seller may refund order %d", domain.ErrUnauthorized, orderID)
		}

		toReturn := amount
		if toReturn == nil {
			toReturn = current.EscrowBalance
		}
		if toReturn.Cmp(current.EscrowBalance) != 0 {
			return fmt.Errorf("%w: refund must return the full held balance %s",
				domain.ErrAmountMismatch, current.EscrowBalance)
		}

		if err := s.Orders().TransitionStatus(orderID, domain.StatusFunded, domain.StatusRefunded); err != nil {
			return err
		}

		if err := s.Listings().RestoreInventory(current.ProductID, current.Quantity); err != nil {
			return err
		}
		if current.PaymentMethod == domain.PaymentMethodToken && toReturn.Sign() > 0 {
			if err := s.Vault().Credit(current.Buyer, current.PaymentToken, toReturn); err != nil {
				return err
			}
		}

		current.Status = domain.StatusRefunded
		current.EscrowBalance = big.NewInt(0)
		current.UpdatedAt = uc.now()
		if err := s.Orders().UpdateOrder(current); err != nil {
			return err
		}
		refunded = current
		returned = toReturn
		return nil
	})
	if err != nil {
		uc.recordError("refund", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderRefunded, refunded, returned)
	uc.recordOrderRefunded(refunded)
	return refunded, nil
}

// CancelOrder abandons an order that was never funded. Either party may
// cancel; there are no funds or reserved stock to unwind.
func (uc *DefaultOrderUsecase) CancelOrder(caller string, orderID uint64) (*domain.Order, error) {
	var cancelled *domain.Order
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Buyer != caller && current.Seller != caller {
			return fmt.Errorf("%w: only the buyer or seller may cancel order %d", domain.ErrUnauthorized, orderID)
		}
		if err := s.Orders().TransitionStatus(orderID, domain.StatusPendingFund, domain.StatusCancelled); err != nil {
			return err
		}

		current.Status = domain.StatusCancelled
		current.UpdatedAt = uc.now()
		if err := s.Orders().UpdateOrder(current); err != nil {
			return err
		}
		cancelled = current
		return nil
	})
	if err != nil {
		uc.recordError("cancel", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderCancelled, cancelled, nil)
	uc.recordOrderCancelled(cancelled)
	return cancelled, nil
}
