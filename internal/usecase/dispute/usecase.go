package dispute

import (
	"log/slog"
	"math/big"
	"strconv"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
	"github.com/swenautos/escrow-service/internal/infrastructure/metrics"
)

type OpenDisputeInput struct {
	Caller      string
	OrderID     uint64
	Reason      domain.DisputeReason
	Description string
}

type ResolveDisputeInput struct {
	Caller        string
	DisputeID     uint64
	BuyerRelease  *big.Int
	SellerRelease *big.Int
}

type DisputeUsecase interface {
	OpenDispute(input *OpenDisputeInput) (*domain.Dispute, error)
	ResolveDispute(input *ResolveDisputeInput) (*domain.Dispute, error)

	SetArbitrator(caller, address string) error
	GetArbitrator() (string, error)

	GetDisputeByID(disputeID uint64) (*domain.Dispute, error)
	GetDisputeByOrderID(orderID uint64) (*domain.Dispute, error)
	CountDisputes() (int64, error)
}

// DefaultDisputeUsecase arbitrates escrowed orders. The arbitrator address
// is read from persistent settings on every resolution so a rotation takes
// effect without a restart.
type DefaultDisputeUsecase struct {
	store     domain.Store
	publisher domain.PublisherPort
	metrics   *metrics.EscrowMetrics
	owner     string
}

func NewDefaultDisputeUsecase(
	store domain.Store,
	pub domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics,
	owner string,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		store:     store,
		publisher: pub,
		metrics:   escrowMetrics,
		owner:     owner,
	}
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(eventType string, d *domain.Dispute) {
	if uc.publisher == nil {
		return
	}
	event := publisher.DisputeEvent{
		DisputeID:  d.ID,
		OrderID:    d.OrderID,
		Initiator:  d.Initiator,
		Reason:     string(d.Reason),
		Status:     string(d.Status),
		Arbitrator: d.Arbitrator,
	}
	if d.BuyerRelease != nil {
		event.BuyerRelease = d.BuyerRelease.String()
	}
	if d.SellerRelease != nil {
		event.SellerRelease = d.SellerRelease.String()
	}
	go func() {
		msg, err := publisher.NewMessage(eventType, strconv.FormatUint(event.DisputeID, 10), event)
		if err != nil {
			slog.Error("failed to build dispute event", "type", eventType, "dispute_id", event.DisputeID, "error", err.Error())
			return
		}
		if err := uc.publisher.Publish(publisher.TopicDisputeEvents, msg); err != nil {
			slog.Error("failed to publish dispute event", "type", eventType, "dispute_id", event.DisputeID, "error", err.Error())
		}
	}()
}
