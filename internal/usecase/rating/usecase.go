package rating

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
	"github.com/swenautos/escrow-service/internal/infrastructure/metrics"
)

type SubmitRatingInput struct {
	Caller     string
	OrderID    uint64
	Score      uint8
	ReviewHash string
}

type RatingUsecase interface {
	SubmitRating(input *SubmitRatingInput) (*domain.Rating, error)
	RemoveRating(caller string, orderID uint64) error

	GetRatingByOrderID(orderID uint64) (*domain.Rating, error)
	GetSellerRating(seller string) (*domain.SellerRating, error)
	GetSellerRatings(seller string, offset, limit int) ([]*domain.Rating, int64, error)
	CountRatings() (int64, error)
}

// DefaultRatingUsecase maintains the seller reputation ledger. The per-order
// rating rows are the source of truth; the seller aggregate is adjusted in
// the same transaction so the two can never drift.
type DefaultRatingUsecase struct {
	store        domain.Store
	publisher    domain.PublisherPort
	metrics      *metrics.EscrowMetrics
	owner        string
	maxPageLimit int
}

func NewDefaultRatingUsecase(
	store domain.Store,
	pub domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics,
	owner string,
	maxPageLimit int,
) *DefaultRatingUsecase {
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &DefaultRatingUsecase{
		store:        store,
		publisher:    pub,
		metrics:      escrowMetrics,
		owner:        owner,
		maxPageLimit: maxPageLimit,
	}
}

func (uc *DefaultRatingUsecase) clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > uc.maxPageLimit {
		return uc.maxPageLimit
	}
	return limit
}

func (uc *DefaultRatingUsecase) publishRatingEvent(eventType string, r *domain.Rating, aggregate *domain.SellerRating) {
	if uc.publisher == nil {
		return
	}
	event := publisher.RatingEvent{
		OrderID: r.OrderID,
		Buyer:   r.Buyer,
		Seller:  r.Seller,
		Score:   r.Score,
	}
	if aggregate != nil {
		event.TotalRatings = aggregate.TotalRatings
		event.AverageScore = aggregate.AverageScore()
	}
	go func() {
		msg, err := publisher.NewMessage(eventType, strconv.FormatUint(event.OrderID, 10), event)
		if err != nil {
			slog.Error("failed to build rating event", "type", eventType, "order_id", event.OrderID, "error", err.Error())
			return
		}
		if err := uc.publisher.Publish(publisher.TopicRatingEvents, msg); err != nil {
			slog.Error("failed to publish rating event", "type", eventType, "order_id", event.OrderID, "error", err.Error())
		}
	}()
}

func (uc *DefaultRatingUsecase) recordError(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	kind := "internal"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		kind = "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		kind = "unauthorized"
	case errors.Is(err, domain.ErrAlreadyRated):
		kind = "already_rated"
	case errors.Is(err, domain.ErrScoreOutOfRange):
		kind = "score_out_of_range"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		kind = "invalid_transition"
	}
	uc.metrics.RecordError(operation, kind)
}
