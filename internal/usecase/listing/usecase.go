package listing

import (
	"math/big"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/metrics"
)

type CreateListingInput struct {
	Seller       string
	Name         string
	Description  string
	Category     string
	Price        *big.Int
	PaymentToken string
	Inventory    uint64
	ContentHash  string
}

// UpdateListingInput carries the mutable listing fields; nil means "leave
// unchanged". AddInventory tops up stock without touching the sold counter.
type UpdateListingInput struct {
	ProductID    uint64
	Name         *string
	Description  *string
	Category     *string
	Price        *big.Int
	ContentHash  *string
	AddInventory *uint64
}

type ListingUsecase interface {
	CreateListing(input *CreateListingInput) (*domain.Listing, error)
	UpdateListing(caller string, input *UpdateListingInput) (*domain.Listing, error)
	DeactivateListing(caller string, productID uint64) error

	GetListingByID(productID uint64) (*domain.Listing, error)
	GetActiveListings(offset, limit int) ([]*domain.Listing, int64, error)
	GetSellerListings(seller string, offset, limit int) ([]*domain.Listing, int64, error)
	IsProductAvailable(productID, qty uint64) (bool, error)
}

type DefaultListingUsecase struct {
	store        domain.Store
	publisher    domain.PublisherPort
	metrics      *metrics.EscrowMetrics
	maxPageLimit int
}

func NewDefaultListingUsecase(
	store domain.Store,
	publisher domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics,
	maxPageLimit int,
) *DefaultListingUsecase {
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &DefaultListingUsecase{
		store:        store,
		publisher:    publisher,
		metrics:      escrowMetrics,
		maxPageLimit: maxPageLimit,
	}
}

func (uc *DefaultListingUsecase) clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > uc.maxPageLimit {
		return uc.maxPageLimit
	}
	return limit
}
