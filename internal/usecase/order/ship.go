package order

import (
	"fmt"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// MarkShipped is the seller's move out of FUNDED. Shipping starts the
// auto-release countdown: absent buyer action the keeper pays the seller
// once the deadline passes.
func (uc *DefaultOrderUsecase) MarkShipped(caller string, orderID uint64, trackingNumber string) (*domain.Order, error) {
	var shipped *domain.Order
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Seller != caller {
			return fmt.Errorf("%w: only the seller may ship order %d", domain.ErrUnauthorized, orderID)
		}
		if err := s.Orders().TransitionStatus(orderID, domain.StatusFunded, domain.StatusShipped); err != nil {
			return err
		}

		now := uc.now()
		deadline := now.Add(uc.autoReleaseWindow)
		current.Status = domain.StatusShipped
		current.ShippedAt = &now
		current.TrackingNumber = trackingNumber
		current.AutoReleaseDeadline = &deadline
		current.UpdatedAt = now
		if err := s.Orders().UpdateOrder(current); err != nil {
			return err
		}
		shipped = current
		return nil
	})
	if err != nil {
		uc.recordError("ship", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderShipped, shipped, nil)
	return shipped, nil
}
