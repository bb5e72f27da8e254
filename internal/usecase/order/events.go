package order

import (
	"log/slog"
	"math/big"
	"strconv"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// publishOrderEvent fires the changelog event for a committed transition.
// Publishing is async and best-effort, the database is the source of truth.
func (uc *DefaultOrderUsecase) publishOrderEvent(eventType string, o *domain.Order, releasedAmount *big.Int) {
	if uc.publisher == nil {
		return
	}
	event := publisher.OrderEvent{
		OrderID:        o.ID,
		Reference:      o.Reference,
		Buyer:          o.Buyer,
		Seller:         o.Seller,
		ProductID:      o.ProductID,
		Quantity:       o.Quantity,
		Amount:         o.Amount.String(),
		PaymentToken:   o.PaymentToken,
		PaymentMethod:  string(o.PaymentMethod),
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
	}
	if releasedAmount != nil {
		event.ReleasedAmount = releasedAmount.String()
	}
	go func() {
		msg, err := publisher.NewMessage(eventType, strconv.FormatUint(event.OrderID, 10), event)
		if err != nil {
			slog.Error("failed to build order event", "type", eventType, "order_id", event.OrderID, "error", err.Error())
			return
		}
		if err := uc.publisher.Publish(publisher.TopicOrderEvents, msg); err != nil {
			slog.Error("failed to publish order event", "type", eventType, "order_id", event.OrderID, "error", err.Error())
		}
	}()
}
