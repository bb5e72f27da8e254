package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// ReleaseFundsToSeller pays the seller out of escrow after the buyer has
// confirmed delivery. A nil amount releases the full held balance.
func (uc *DefaultOrderUsecase) ReleaseFundsToSeller(caller string, orderID uint64, amount *big.Int) (*domain.Order, error) {
	var completed *domain.Order
	var released *big.Int
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Buyer != caller {
			return fmt.Errorf("%w: only the buyer may release funds for order %d", domain.ErrUnauthorized, orderID)
		}

		toRelease := amount
		if toRelease == nil {
			toRelease = current.EscrowBalance
		}
		if toRelease.Sign() < 0 || toRelease.Cmp(current.EscrowBalance) > 0 {
			return fmt.Errorf("%w: order %d holds %s, requested %s",
				domain.ErrAmountMismatch, orderID, current.EscrowBalance, toRelease)
		}

		if err := s.Orders().TransitionStatus(orderID, domain.StatusDelivered, domain.StatusCompleted); err != nil {
			return err
		}

		if err := uc.payOut(s, current, current.Seller, toRelease); err != nil {
			return err
		}
		completed = current
		released = toRelease
		return nil
	})
	if err != nil {
		uc.recordError("release", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderReleased, completed, released)
	uc.recordOrderCompleted("buyer_release")
	return completed, nil
}

// AutoReleaseIfEligible is the permissionless keeper entry point: anyone may
// trigger it, eligibility is decided solely by stored state and the clock.
func (uc *DefaultOrderUsecase) AutoReleaseIfEligible(orderID uint64) (*domain.Order, error) {
	var completed *domain.Order
	var released *big.Int
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(orderID)
		if err != nil {
			return err
		}
		if current.Status != domain.StatusDelivered {
			return fmt.Errorf("%w: order %d is %s", domain.ErrNotEligible, orderID, current.Status)
		}
		if current.AutoReleaseDeadline == nil || !uc.now().After(*current.AutoReleaseDeadline) {
			return fmt.Errorf("%w: order %d deadline not reached", domain.ErrNotEligible, orderID)
		}

		if err := s.Orders().TransitionStatus(orderID, domain.StatusDelivered, domain.StatusCompleted); err != nil {
			if errors.Is(err, domain.ErrInvalidStateTransition) {
				return fmt.Errorf("%w: order %d", domain.ErrNotEligible, orderID)
			}
			return err
		}

		full := new(big.Int).Set(current.EscrowBalance)
		if err := uc.payOut(s, current, current.Seller, full); err != nil {
			return err
		}
		completed = current
		released = full
		return nil
	})
	if err != nil {
		uc.recordError("auto_release", err)
		return nil, err
	}

	uc.publishOrderEvent(publisher.EventOrderAutoReleased, completed, released)
	uc.recordOrderAutoReleased(completed)
	return completed, nil
}

// AutoReleaseEligibleOrders is the keeper sweep run from the background
// ticker. Per-order failures are logged and skipped so one stuck order
// cannot block the rest.
func (uc *DefaultOrderUsecase) AutoReleaseEligibleOrders(ctx context.Context) error {
	eligible, err := uc.store.Orders().FindAutoReleasable(uc.now())
	if err != nil {
		return err
	}

	for _, candidate := range eligible {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := uc.AutoReleaseIfEligible(candidate.ID); err != nil {
			log.Printf("Auto-release failed for order %d: %v\n", candidate.ID, err)
			continue
		}
		log.Printf("Order %d auto-released after deadline\n", candidate.ID)
	}
	return nil
}

// payOut credits the recipient, marks the order COMPLETED and burns the
// released portion of the escrow balance. Must run inside the caller's
// transaction, after the status CAS succeeded.
func (uc *DefaultOrderUsecase) payOut(s domain.Store, current *domain.Order, recipient string, amount *big.Int) error {
	if current.PaymentMethod == domain.PaymentMethodToken && amount.Sign() > 0 {
		if err := s.Vault().Credit(recipient, current.PaymentToken, amount); err != nil {
			return err
		}
	}

	current.Status = domain.StatusCompleted
	current.EscrowBalance = new(big.Int).Sub(current.EscrowBalance, amount)
	current.UpdatedAt = uc.now()
	return s.Orders().UpdateOrder(current)
}
