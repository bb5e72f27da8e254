package dispute

import (
	"fmt"
	"math/big"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// ResolveDispute is the arbitrator's verdict: the escrowed funds are split
// between buyer and seller per the release amounts. Any residual after the
// split stays on the order as an unclaimed balance. Resolution is final,
// the duplicate guard sits on the dispute row itself.
func (uc *DefaultDisputeUsecase) ResolveDispute(input *ResolveDisputeInput) (*domain.Dispute, error) {
	buyerRelease := input.BuyerRelease
	if buyerRelease == nil {
		buyerRelease = big.NewInt(0)
	}
	sellerRelease := input.SellerRelease
	if sellerRelease == nil {
		sellerRelease = big.NewInt(0)
	}
	if buyerRelease.Sign() < 0 || sellerRelease.Sign() < 0 {
		return nil, fmt.Errorf("%w: release amounts must not be negative", domain.ErrInvalidArgument)
	}

	var resolved *domain.Dispute
	err := uc.store.InTx(func(s domain.Store) error {
		arbitrator, err := s.Settings().GetArbitrator()
		if err != nil {
			return err
		}
		if arbitrator == "" || input.Caller != arbitrator {
			return fmt.Errorf("%w: only the arbitrator may resolve disputes", domain.ErrUnauthorized)
		}

		current, err := s.Disputes().GetDisputeByID(input.DisputeID)
		if err != nil {
			return err
		}
		// Finality must be reported before any amount check: once resolved,
		// the held balance is already spent and any split would "mismatch".
		if current.Status != domain.DisputeOpen {
			return fmt.Errorf("%w: dispute %d", domain.ErrDuplicateResolution, current.ID)
		}
		order, err := s.Orders().GetOrderByID(current.OrderID)
		if err != nil {
			return err
		}

		total := new(big.Int).Add(buyerRelease, sellerRelease)
		if total.Cmp(order.EscrowBalance) > 0 {
			return fmt.Errorf("%w: split %s exceeds held balance %s",
				domain.ErrAmountMismatch, total, order.EscrowBalance)
		}

		now := time.Now()
		current.Status = domain.DisputeResolved
		current.Arbitrator = arbitrator
		current.BuyerRelease = buyerRelease
		current.SellerRelease = sellerRelease
		current.ResolvedAt = &now
		current.UpdatedAt = now
		// The guarded update on the OPEN dispute closes the race between
		// concurrent resolutions; it must run before any funds move.
		if err := s.Disputes().MarkResolved(current); err != nil {
			return err
		}
		if err := s.Orders().TransitionStatus(order.ID, domain.StatusDisputed, domain.StatusCompleted); err != nil {
			return err
		}

		if order.PaymentMethod == domain.PaymentMethodToken {
			if buyerRelease.Sign() > 0 {
				if err := s.Vault().Credit(order.Buyer, order.PaymentToken, buyerRelease); err != nil {
					return err
				}
			}
			if sellerRelease.Sign() > 0 {
				if err := s.Vault().Credit(order.Seller, order.PaymentToken, sellerRelease); err != nil {
					return err
				}
			}
		}

		order.Status = domain.StatusCompleted
		order.EscrowBalance = new(big.Int).Sub(order.EscrowBalance, total)
		order.UpdatedAt = now
		if err := s.Orders().UpdateOrder(order); err != nil {
			return err
		}
		resolved = current
		return nil
	})
	if err != nil {
		uc.recordError("resolve_dispute", err)
		return nil, err
	}

	uc.publishDisputeEvent(publisher.EventDisputeResolved, resolved)
	if uc.metrics != nil {
		uc.metrics.RecordDisputeResolved(string(resolved.Reason))
		uc.metrics.RecordOrderCompleted("dispute_resolution")
	}
	return resolved, nil
}

// SetArbitrator rotates the arbitration authority. Owner only.
func (uc *DefaultDisputeUsecase) SetArbitrator(caller, address string) error {
	if caller != uc.owner {
		return fmt.Errorf("%w: only the owner may change the arbitrator", domain.ErrUnauthorized)
	}
	if address == "" {
		return fmt.Errorf("%w: arbitrator address required", domain.ErrInvalidArgument)
	}
	return uc.store.Settings().SetArbitrator(address)
}

func (uc *DefaultDisputeUsecase) GetArbitrator() (string, error) {
	return uc.store.Settings().GetArbitrator()
}

// EnsureArbitrator seeds the persisted arbitrator on first boot. An already
// stored address wins over the configured default.
func (uc *DefaultDisputeUsecase) EnsureArbitrator(configured string) error {
	stored, err := uc.store.Settings().GetArbitrator()
	if err != nil {
		return err
	}
	if stored != "" || configured == "" {
		return nil
	}
	return uc.store.Settings().SetArbitrator(configured)
}
