package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRatingRepository struct {
	db *gorm.DB
}

func NewDefaultRatingRepository(db *gorm.DB) *DefaultRatingRepository {
	return &DefaultRatingRepository{db: db}
}

func (r *DefaultRatingRepository) CreateRating(rating *domain.Rating) error {
	return r.db.Create(mappers.ToGORMRating(rating)).Error
}

func (r *DefaultRatingRepository) GetRatingByOrderID(orderID uint64) (*domain.Rating, error) {
	var ratingModel models.RatingModel
	if err := r.db.First(&ratingModel, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rating for order %d", domain.ErrNotFound, orderID)
		}
		return nil, err
	}
	return mappers.ToDomainRating(&ratingModel), nil
}

func (r *DefaultRatingRepository) DeleteRating(orderID uint64) error {
	result := r.db.Delete(&models.RatingModel{}, "order_id = ?", orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: rating for order %d", domain.ErrNotFound, orderID)
	}
	return nil
}

func (r *DefaultRatingRepository) HasRatedOrder(orderID uint64, buyer string) (bool, error) {
	var count int64
	err := r.db.Model(&models.RatingModel{}).
		Where("order_id = ? AND buyer = ?", orderID, buyer).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultRatingRepository) GetSellerRating(seller string) (*domain.SellerRating, error) {
	var aggregateModel models.SellerRatingModel
	if err := r.db.First(&aggregateModel, "seller = ?", seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// An unrated seller has a zero aggregate, not a missing one.
			return &domain.SellerRating{Seller: seller}, nil
		}
		return nil, err
	}
	return mappers.ToDomainSellerRating(&aggregateModel), nil
}

func (r *DefaultRatingRepository) ApplyScore(seller string, deltaCount, deltaScore int64) error {
	aggregateModel := models.SellerRatingModel{Seller: seller}
	if err := r.db.FirstOrCreate(&aggregateModel, models.SellerRatingModel{Seller: seller}).Error; err != nil {
		return err
	}

	query := r.db.Model(&models.SellerRatingModel{}).Where("seller = ?", seller)
	if deltaCount < 0 {
		// Guard against driving the aggregate negative on removal.
		query = query.Where("total_ratings >= ? AND total_score >= ?", -deltaCount, -deltaScore)
	}
	result := query.Updates(map[string]interface{}{
		"total_ratings": gorm.Expr("total_ratings + ?", deltaCount),
		"total_score":   gorm.Expr("total_score + ?", deltaScore),
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: seller aggregate for %s would go negative", domain.ErrInvalidRestore, seller)
	}
	return nil
}

func (r *DefaultRatingRepository) GetSellerRatings(seller string, offset, limit int) ([]*domain.Rating, int64, error) {
	baseQuery := r.db.Model(&models.RatingModel{}).Where("seller = ?", seller)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	var ratingModels []models.RatingModel
	if err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find ratings: %w", err)
	}

	ratings := make([]*domain.Rating, len(ratingModels))
	for i, ratingModel := range ratingModels {
		ratings[i] = mappers.ToDomainRating(&ratingModel)
	}
	return ratings, total, nil
}

func (r *DefaultRatingRepository) CountRatings() (int64, error) {
	var total int64
	err := r.db.Model(&models.RatingModel{}).Count(&total).Error
	return total, err
}
