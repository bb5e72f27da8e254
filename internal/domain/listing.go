package domain

import (
	"math/big"
	"time"
)

// NativeToken is the payment token sentinel for the chain-native asset.
const NativeToken = "NATIVE"

type Listing struct {
	ID           uint64
	Seller       string
	Name         string
	Description  string
	Category     string
	Price        *big.Int
	PaymentToken string
	Inventory    uint64
	Sold         uint64
	IsActive     bool
	ContentHash  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListingRepository interface {
	CreateListing(listing *Listing) error
	GetListingByID(productID uint64) (*Listing, error)
	UpdateListing(listing *Listing) error
	DeactivateListing(productID uint64) error

	// ReduceInventory moves qty units from inventory to sold. Fails with
	// ErrInsufficientInventory when qty exceeds the current inventory.
	ReduceInventory(productID, qty uint64) error
	// RestoreInventory reverses a prior reduction. Fails with
	// ErrInvalidRestore when qty exceeds the sold count.
	RestoreInventory(productID, qty uint64) error

	GetActiveListings(offset, limit int) ([]*Listing, int64, error)
	GetSellerListings(seller string, offset, limit int) ([]*Listing, int64, error)
}
