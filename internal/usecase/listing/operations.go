package listing

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
	publisher "github.com/swenautos/escrow-service/internal/infrastructure/kafka"
)

func (uc *DefaultListingUsecase) CreateListing(input *CreateListingInput) (*domain.Listing, error) {
	if input.Seller == "" {
		return nil, fmt.Errorf("%w: seller address required", domain.ErrInvalidArgument)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: listing name required", domain.ErrInvalidArgument)
	}
	if input.Price == nil || input.Price.Sign() < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidArgument)
	}

	paymentToken := input.PaymentToken
	if paymentToken == "" {
		paymentToken = domain.NativeToken
	}

	now := time.Now()
	newListing := &domain.Listing{
		Seller:       input.Seller,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		PaymentToken: paymentToken,
		Inventory:    input.Inventory,
		IsActive:     true,
		ContentHash:  input.ContentHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.store.Listings().CreateListing(newListing); err != nil {
		return nil, err
	}

	uc.publishListingEvent(publisher.EventListingCreated, newListing)
	return newListing, nil
}

func (uc *DefaultListingUsecase) UpdateListing(caller string, input *UpdateListingInput) (*domain.Listing, error) {
	var updated *domain.Listing
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Listings().GetListingByID(input.ProductID)
		if err != nil {
			return err
		}
		if current.Seller != caller {
			return fmt.Errorf("%w: caller is not the listing seller", domain.ErrUnauthorized)
		}

		if input.Name != nil {
			current.Name = *input.Name
		}
		if input.Description != nil {
			current.Description = *input.Description
		}
		if input.Category != nil {
			current.Category = *input.Category
		}
		if input.Price != nil {
			if input.Price.Sign() < 0 {
				return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidArgument)
			}
			current.Price = input.Price
		}
		if input.ContentHash != nil {
			current.ContentHash = *input.ContentHash
		}
		if input.AddInventory != nil {
			// A top-up never touches the sold counter, so it cannot corrupt
			// the reserve/restore accounting of an in-flight funding.
			current.Inventory += *input.AddInventory
		}
		current.UpdatedAt = time.Now()

		if err := s.Listings().UpdateListing(current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishListingEvent(publisher.EventListingUpdated, updated)
	return updated, nil
}

// DeactivateListing soft-deletes: the listing drops out of the active
// enumeration but stays queryable. Deactivating twice is a no-op.
func (uc *DefaultListingUsecase) DeactivateListing(caller string, productID uint64) error {
	var deactivated *domain.Listing
	err := uc.store.InTx(func(s domain.Store) error {
		current, err := s.Listings().GetListingByID(productID)
		if err != nil {
			return err
		}
		if current.Seller != caller {
			return fmt.Errorf("%w: caller is not the listing seller", domain.ErrUnauthorized)
		}
		if !current.IsActive {
			return nil
		}
		if err := s.Listings().DeactivateListing(productID); err != nil {
			return err
		}
		current.IsActive = false
		deactivated = current
		return nil
	})
	if err != nil {
		return err
	}

	if deactivated != nil {
		uc.publishListingEvent(publisher.EventListingDeactivated, deactivated)
	}
	return nil
}

func (uc *DefaultListingUsecase) GetListingByID(productID uint64) (*domain.Listing, error) {
	return uc.store.Listings().GetListingByID(productID)
}

func (uc *DefaultListingUsecase) GetActiveListings(offset, limit int) ([]*domain.Listing, int64, error) {
	if offset < 0 {
		offset = 0
	}
	return uc.store.Listings().GetActiveListings(offset, uc.clampLimit(limit))
}

func (uc *DefaultListingUsecase) GetSellerListings(seller string, offset, limit int) ([]*domain.Listing, int64, error) {
	if offset < 0 {
		offset = 0
	}
	return uc.store.Listings().GetSellerListings(seller, offset, uc.clampLimit(limit))
}

func (uc *DefaultListingUsecase) IsProductAvailable(productID, qty uint64) (bool, error) {
	current, err := uc.store.Listings().GetListingByID(productID)
	if err != nil {
		return false, err
	}
	return current.IsActive && current.Inventory >= qty, nil
}

func (uc *DefaultListingUsecase) publishListingEvent(eventType string, l *domain.Listing) {
	if uc.publisher == nil {
		return
	}
	go func(event publisher.ListingEvent) {
		msg, err := publisher.NewMessage(eventType, strconv.FormatUint(event.ProductID, 10), event)
		if err != nil {
			slog.Error("failed to build listing event", "type", eventType, "error", err.Error())
			return
		}
		if err := uc.publisher.Publish(publisher.TopicListingEvents, msg); err != nil {
			slog.Error("failed to publish listing event", "type", eventType, "error", err.Error())
		}
	}(publisher.ListingEvent{
		ProductID:    l.ID,
		Seller:       l.Seller,
		Name:         l.Name,
		Category:     l.Category,
		Price:        l.Price.String(),
		PaymentToken: l.PaymentToken,
		Inventory:    l.Inventory,
		IsActive:     l.IsActive,
	})
}
