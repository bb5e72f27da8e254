package repository

import (
	"errors"
	"fmt"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultListingRepository struct {
	db *gorm.DB
}

func NewDefaultListingRepository(db *gorm.DB) *DefaultListingRepository {
	return &DefaultListingRepository{db: db}
}

func (r *DefaultListingRepository) CreateListing(listing *domain.Listing) error {
	listingModel := mappers.ToGORMListing(listing)
	if err := r.db.Create(listingModel).Error; err != nil {
		return err
	}
	listing.ID = listingModel.ID
	return nil
}

func (r *DefaultListingRepository) GetListingByID(productID uint64) (*domain.Listing, error) {
	var listingModel models.ListingModel
	if err := r.db.First(&listingModel, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %d", domain.ErrNotFound, productID)
		}
		return nil, err
	}
	return mappers.ToDomainListing(&listingModel), nil
}

func (r *DefaultListingRepository) UpdateListing(listing *domain.Listing) error {
	return r.db.Save(mappers.ToGORMListing(listing)).Error
}

func (r *DefaultListingRepository) DeactivateListing(productID uint64) error {
	result := r.db.Model(&models.ListingModel{}).
		Where("id = ?", productID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: listing %d", domain.ErrNotFound, productID)
	}
	return nil
}

// ReduceInventory is a single guarded update: the inventory check and the
// decrement commit together, so two funding transactions cannot oversell.
func (r *DefaultListingRepository) ReduceInventory(productID, qty uint64) error {
	result := r.db.Model(&models.ListingModel{}).
		Where("id = ? AND inventory >= ?", productID, qty).
		Updates(map[string]interface{}{
			"inventory": gorm.Expr("inventory - ?", qty),
			"sold":      gorm.Expr("sold + ?", qty),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetListingByID(productID); err != nil {
			return err
		}
		return fmt.Errorf("%w: listing %d, requested %d", domain.ErrInsufficientInventory, productID, qty)
	}
	return nil
}

func (r *DefaultListingRepository) RestoreInventory(productID, qty uint64) error {
	result := r.db.Model(&models.ListingModel{}).
		Where("id = ? AND sold >= ?", productID, qty).
		Updates(map[string]interface{}{
			"inventory": gorm.Expr("inventory + ?", qty),
			"sold":      gorm.Expr("sold - ?", qty),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetListingByID(productID); err != nil {
			return err
		}
		return fmt.Errorf("%w: listing %d, requested %d", domain.ErrInvalidRestore, productID, qty)
	}
	return nil
}

func (r *DefaultListingRepository) GetActiveListings(offset, limit int) ([]*domain.Listing, int64, error) {
	baseQuery := r.db.Model(&models.ListingModel{}).Where("is_active = ?", true)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var listingModels []models.ListingModel
	if err := baseQuery.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&listingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find listings: %w", err)
	}

	listings := make([]*domain.Listing, len(listingModels))
	for i, listingModel := range listingModels {
		listings[i] = mappers.ToDomainListing(&listingModel)
	}
	return listings, total, nil
}

func (r *DefaultListingRepository) GetSellerListings(seller string, offset, limit int) ([]*domain.Listing, int64, error) {
	baseQuery := r.db.Model(&models.ListingModel{}).Where("seller = ?", seller)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count seller listings: %w", err)
	}

	var listingModels []models.ListingModel
	if err := baseQuery.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&listingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find seller listings: %w", err)
	}

	listings := make([]*domain.Listing, len(listingModels))
	for i, listingModel := range listingModels {
		listings[i] = mappers.ToDomainListing(&listingModel)
	}
	return listings, total, nil
}
