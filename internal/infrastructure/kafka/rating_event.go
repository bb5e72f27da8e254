package kafka

const (
	EventRatingSubmitted = "rating.submitted"
	EventRatingRemoved   = "rating.removed"
)

type RatingEvent struct {
	OrderID      uint64 `json:"order_id"`
	Buyer        string `json:"buyer"`
	Seller       string `json:"seller"`
	Score        uint8  `json:"score"`
	TotalRatings uint64 `json:"total_ratings"`
	AverageScore uint64 `json:"average_score"`
}
