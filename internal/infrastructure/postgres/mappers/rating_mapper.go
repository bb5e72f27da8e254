package mappers

import (
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMRating(rating *domain.Rating) *models.RatingModel {
	return &models.RatingModel{
		OrderID:    rating.OrderID,
		Buyer:      rating.Buyer,
		Seller:     rating.Seller,
		Score:      rating.Score,
		ReviewHash: rating.ReviewHash,
		CreatedAt:  rating.CreatedAt,
	}
}

func ToDomainRating(model *models.RatingModel) *domain.Rating {
	return &domain.Rating{
		OrderID:    model.OrderID,
		Buyer:      model.Buyer,
		Seller:     model.Seller,
		Score:      model.Score,
		ReviewHash: model.ReviewHash,
		CreatedAt:  model.CreatedAt,
	}
}

func ToDomainSellerRating(model *models.SellerRatingModel) *domain.SellerRating {
	return &domain.SellerRating{
		Seller:       model.Seller,
		TotalRatings: model.TotalRatings,
		TotalScore:   model.TotalScore,
		UpdatedAt:    model.UpdatedAt,
	}
}
