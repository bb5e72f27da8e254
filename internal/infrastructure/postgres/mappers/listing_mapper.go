package mappers

import (
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMListing(listing *domain.Listing) *models.ListingModel {
	return &models.ListingModel{
		ID:           listing.ID,
		Seller:       listing.Seller,
		Name:         listing.Name,
		Description:  listing.Description,
		Category:     listing.Category,
		Price:        AmountToString(listing.Price),
		PaymentToken: listing.PaymentToken,
		Inventory:    listing.Inventory,
		Sold:         listing.Sold,
		IsActive:     listing.IsActive,
		ContentHash:  listing.ContentHash,
		CreatedAt:    listing.CreatedAt,
		UpdatedAt:    listing.UpdatedAt,
	}
}

func ToDomainListing(model *models.ListingModel) *domain.Listing {
	return &domain.Listing{
		ID:           model.ID,
		Seller:       model.Seller,
		Name:         model.Name,
		Description:  model.Description,
		Category:     model.Category,
		Price:        AmountFromString(model.Price),
		PaymentToken: model.PaymentToken,
		Inventory:    model.Inventory,
		Sold:         model.Sold,
		IsActive:     model.IsActive,
		ContentHash:  model.ContentHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
