package dispute

import (
	"errors"
	"fmt"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// OpenDispute freezes an order pending arbitration. Only the two parties may
// open one, and only while funds are actually held, so the arbitrator always
// has something to split.
func (uc *DefaultDisputeUsecase) OpenDispute(input *OpenDisputeInput) (*domain.Dispute, error) {
	if !input.Reason.Valid() {
		return nil, fmt.Errorf("%w: unknown dispute reason %q", domain.ErrInvalidArgument, input.Reason)
	}

	var opened *domain.Dispute
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Orders().GetOrderByID(input.OrderID)
		if err != nil {
			return err
		}
		if current.Buyer != input.Caller && current.Seller != input.Caller {
			return fmt.Errorf("%w: only the buyer or seller may dispute order %d", domain.ErrUnauthorized, input.OrderID)
		}

		// FUNDED, SHIPPED and DELIVERED all hold the full escrow. Anything
		// earlier has no funds, anything later already settled.
		from := current.Status
		switch from {
		case domain.StatusFunded, domain.StatusShipped, domain.StatusDelivered:
		default:
			return fmt.Errorf("%w: order %d is %s", domain.ErrInvalidStateTransition, input.OrderID, from)
		}
		if err := s.Orders().TransitionStatus(input.OrderID, from, domain.StatusDisputed); err != nil {
			return err
		}

		now := time.Now()
		opened = &domain.Dispute{
			OrderID:     input.OrderID,
			Initiator:   input.Caller,
			Reason:      input.Reason,
			Description: input.Description,
			Status:      domain.DisputeOpen,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s.Disputes().CreateDispute(opened)
	})
	if err != nil {
		uc.recordError("open_dispute", err)
		return nil, err
	}

	uc.publishDisputeEvent(publisher.EventDisputeOpened, opened)
	if uc.metrics != nil {
		uc.metrics.RecordDisputeOpened(string(opened.Reason))
	}
	return opened, nil
}

func (uc *DefaultDisputeUsecase) recordError(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	kind := "internal"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		kind = "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		kind = "unauthorized"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		kind = "invalid_transition"
	case errors.Is(err, domain.ErrDuplicateResolution):
		kind = "duplicate_resolution"
	case errors.Is(err, domain.ErrAmountMismatch):
		kind = "amount_mismatch"
	case errors.Is(err, domain.ErrInvalidArgument):
		kind = "invalid_argument"
	}
	uc.metrics.RecordError(operation, kind)
}
