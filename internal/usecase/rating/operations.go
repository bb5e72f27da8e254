package rating

import (
	"fmt"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

// SubmitRating records the buyer's one-per-order review and folds the score
// into the seller aggregate.
func (uc *DefaultRatingUsecase) SubmitRating(input *SubmitRatingInput) (*domain.Rating, error) {
	if input.Score < domain.MinScore || input.Score > domain.MaxScore {
		return nil, fmt.Errorf("%w: got %d", domain.ErrScoreOutOfRange, input.Score)
	}

	var submitted *domain.Rating
	var aggregate *domain.SellerRating
	err := uc.store.InTx(func(s domain.Store) error {
		order, err := s.Orders().GetOrderByID(input.OrderID)
		if err != nil {
			return err
		}
		if order.Buyer != input.Caller {
			return fmt.Errorf("%w: only the buyer may rate order %d", domain.ErrUnauthorized, input.OrderID)
		}
		// Rating opens once the goods arrived; settlement is not required.
		switch order.Status {
		case domain.StatusDelivered, domain.StatusCompleted:
		default:
			return fmt.Errorf("%w: order %d is %s", domain.ErrInvalidStateTransition, input.OrderID, order.Status)
		}

		rated, err := s.Ratings().HasRatedOrder(input.OrderID, input.Caller)
		if err != nil {
			return err
		}
		if rated {
			return fmt.Errorf("%w: order %d", domain.ErrAlreadyRated, input.OrderID)
		}

		submitted = &domain.Rating{
			OrderID:    input.OrderID,
			Buyer:      order.Buyer,
			Seller:     order.Seller,
			Score:      input.Score,
			ReviewHash: input.ReviewHash,
			CreatedAt:  time.Now(),
		}
		if err := s.Ratings().CreateRating(submitted); err != nil {
			return err
		}
		if err := s.Ratings().ApplyScore(order.Seller, 1, int64(input.Score)); err != nil {
			return err
		}
		aggregate, err = s.Ratings().GetSellerRating(order.Seller)
		return err
	})
	if err != nil {
		uc.recordError("submit_rating", err)
		return nil, err
	}

	uc.publishRatingEvent(publisher.EventRatingSubmitted, submitted, aggregate)
	if uc.metrics != nil {
		uc.metrics.RecordRatingSubmitted(fmt.Sprintf("%d", submitted.Score))
	}
	return submitted, nil
}

// RemoveRating is the moderation path: the owner strikes an abusive review
// and the aggregate is rolled back by the same score it once added.
func (uc *DefaultRatingUsecase) RemoveRating(caller string, orderID uint64) error {
	if caller != uc.owner {
		return fmt.Errorf("%w: only the owner may remove ratings", domain.ErrUnauthorized)
	}

	var removed *domain.Rating
	var aggregate *domain.SellerRating
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Ratings().GetRatingByOrderID(orderID)
		if err != nil {
			return err
		}
		if err := s.Ratings().DeleteRating(orderID); err != nil {
			return err
		}
		if err := s.Ratings().ApplyScore(current.Seller, -1, -int64(current.Score)); err != nil {
			return err
		}
		removed = current
		aggregate, err = s.Ratings().GetSellerRating(current.Seller)
		return err
	})
	if err != nil {
		uc.recordError("remove_rating", err)
		return err
	}

	uc.publishRatingEvent(publisher.EventRatingRemoved, removed, aggregate)
	return nil
}

func (uc *DefaultRatingUsecase) GetRatingByOrderID(orderID uint64) (*domain.Rating, error) {
	return uc.store.Ratings().GetRatingByOrderID(orderID)
}

func (uc *DefaultRatingUsecase) GetSellerRating(seller string) (*domain.SellerRating, error) {
	return uc.store.Ratings().GetSellerRating(seller)
}

func (uc *DefaultRatingUsecase) GetSellerRatings(seller string, offset, limit int) ([]*domain.Rating, int64, error) {
	if offset < 0 {
		offset = 0
	}
	return uc.store.Ratings().GetSellerRatings(seller, offset, uc.clampLimit(limit))
}

func (uc *DefaultRatingUsecase) CountRatings() (int64, error) {
	return uc.store.Ratings().CountRatings()
}
