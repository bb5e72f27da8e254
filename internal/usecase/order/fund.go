package order

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// FundEscrow moves the declared amount from the buyer's vault balance into
// escrow and reserves inventory. Everything runs in one transaction: if the
// reservation or the debit fails, no funds are taken and no status changes.
func (uc *DefaultOrderUsecase) FundEscrow(caller string, orderID uint64, amount *big.Int) (*domain.Order, error) {
	var funded *domain.Order
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Buyer != caller {
			return fmt.Errorf("%w: only the buyer may fund order %d", domain.ErrUnauthorized, orderID)
		}
		if current.Status != domain.StatusPendingFund {
			if current.FundedAt != nil {
				return fmt.Errorf("%w: order %d", domain.ErrDoubleFunding, orderID)
			}
			return fmt.Errorf("%w: order %d is %s", domain.ErrInvalidStateTransition, orderID, current.Status)
		}
		if amount == nil || amount.Cmp(current.Amount) != 0 {
			return fmt.Errorf("%w: order %d declares %s", domain.ErrAmountMismatch, orderID, current.Amount)
		}

		// The CAS serializes racing funders: the loser sees the post-state.
		if err := s.Orders().TransitionStatus(orderID, domain.StatusPendingFund, domain.StatusFunded); err != nil {
			if errors.Is(err, domain.ErrInvalidStateTransition) {
				return fmt.Errorf("%w: order %d", domain.ErrDoubleFunding, orderID)
			}
			return err
		}

		if err := s.Listings().ReduceInventory(current.ProductID, current.Quantity); err != nil {
			uc.recordInventoryFailure(current.ProductID)
			return err
		}

		if current.PaymentMethod == domain.PaymentMethodToken {
			if err := s.Vault().Debit(current.Buyer, current.PaymentToken, amount); err != nil {
				return err
			}
		}

		now := uc.now()
		current.Status = domain.StatusFunded
		current.FundedAt = &now
		current.EscrowBalance = new(big.Int).Set(amount)
		current.UpdatedAt = now
		if err := s.Orders().UpdateOrder(current); err != nil {
			return err
		}
		funded = current
		return nil
	})
	if err != nil {
		uc.recordError("fund", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderFunded, funded, nil)
	uc.recordOrderFunded(funded)
	return funded, nil
}
