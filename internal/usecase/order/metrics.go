package order

import (
	"errors"
	"strconv"

	"github.com/swenautos/escrow-service/internal/domain"
)

// errorKind buckets failures for the errors counter. Unclassified errors
// land in "internal".
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrDoubleFunding):
		return "double_funding"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, domain.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, domain.ErrListingInactive):
		return "listing_inactive"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}

func (uc *DefaultOrderUsecase) recordError(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordError(operation, errorKind(err))
}

func (uc *DefaultOrderUsecase) recordOrderCreated(o *domain.Order) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderCreated(string(o.PaymentMethod), o.PaymentToken)
}

func (uc *DefaultOrderUsecase) recordOrderFunded(o *domain.Order) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderFunded(string(o.PaymentMethod), o.PaymentToken)
}

func (uc *DefaultOrderUsecase) recordOrderCompleted(completion string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderCompleted(completion)
}

func (uc *DefaultOrderUsecase) recordOrderRefunded(o *domain.Order) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderRefunded(o.PaymentToken)
}

func (uc *DefaultOrderUsecase) recordOrderCancelled(o *domain.Order) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderCancelled(string(o.PaymentMethod))
}

func (uc *DefaultOrderUsecase) recordOrderAutoReleased(o *domain.Order) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOrderAutoReleased(o.PaymentToken)
	uc.metrics.RecordOrderCompleted("auto_release")
}

func (uc *DefaultOrderUsecase) recordInventoryFailure(productID uint64) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordInventoryReservationFailed(strconv.FormatUint(productID, 10))
}
