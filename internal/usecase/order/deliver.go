package order

import (
	"fmt"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// ConfirmDelivery acknowledges receipt. It does not release funds: the
// buyer releases explicitly, or the keeper does once the deadline passes.
func (uc *DefaultOrderUsecase) ConfirmDelivery(caller string, orderID uint64) (*domain.Order, error) {
	var delivered *domain.Order
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Buyer != caller {
			return fmt.Errorf("%w: only the buyer may confirm delivery of order %d", domain.ErrUnauthorized, orderID)
		}
		if err := s.Orders().TransitionStatus(orderID, domain.StatusShipped, domain.StatusDelivered); err != nil {
			return err
		}

		now := uc.now()
		current.Status = domain.StatusDelivered
		current.DeliveredAt = &now
		current.UpdatedAt = now
		if err := s.Orders().UpdateOrder(current); err != nil {
			return err
		}
		delivered = current
		return nil
	})
	if err != nil {
		uc.recordError("confirm_delivery", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderDeliveryConfirmed, delivered, nil)
	return delivered, nil
}

// CanBuyerConfirmDelivery is the read predicate the storefront uses to gate
// its confirm button.
func (uc *DefaultOrderUsecase) CanBuyerConfirmDelivery(caller string, orderID uint64) (bool, error) {
	current, err := uc.store.Orders().GetOrderByID(orderID)
	if err != nil {
		return false, err
	}
	return current.Status == domain.StatusShipped && current.Buyer == caller, nil
}
