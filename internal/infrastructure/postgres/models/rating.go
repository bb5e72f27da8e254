package models

import "time"

type RatingModel struct {
	OrderID    uint64 `gorm:"primaryKey"`
	Buyer      string `gorm:"index:idx_rating_buyer"`
	Seller     string `gorm:"index:idx_rating_seller"`
	Score      uint8
	ReviewHash string
	CreatedAt  time.Time
}

type SellerRatingModel struct {
	Seller       string `gorm:"primaryKey"`
	TotalRatings uint64
	TotalScore   uint64
	UpdatedAt    time.Time
}
