package domain

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is keyed by order: one review per completed purchase.
type Rating struct {
	OrderID    uint64
	Buyer      string
	Seller     string
	Score      uint8
	ReviewHash string
	CreatedAt  time.Time
}

// SellerRating is the incrementally maintained aggregate for a seller.
type SellerRating struct {
	Seller       string
	TotalRatings uint64
	TotalScore   uint64
	UpdatedAt    time.Time
}

// AverageScore rounds down, matching the fixed-point arithmetic of the
// original contract. Consumers wanting decimals divide TotalScore by
// TotalRatings themselves.
func (s *SellerRating) AverageScore() uint64 {
	if s == nil || s.TotalRatings == 0 {
		return 0
	}
	return s.TotalScore / s.TotalRatings
}

type RatingRepository interface {
	CreateRating(rating *Rating) error
	GetRatingByOrderID(orderID uint64) (*Rating, error)
	DeleteRating(orderID uint64) error
	HasRatedOrder(orderID uint64, buyer string) (bool, error)

	GetSellerRating(seller string) (*SellerRating, error)
	// ApplyScore adjusts the seller aggregate by deltaCount ratings and
	// deltaScore points (negative deltas on removal).
	ApplyScore(seller string, deltaCount, deltaScore int64) error

	GetSellerRatings(seller string, offset, limit int) ([]*Rating, int64, error)
	CountRatings() (int64, error)
}
