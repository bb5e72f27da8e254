package kafka

const (
	EventListingCreated     = "listing.created"
	EventListingUpdated     = "listing.updated"
	EventListingDeactivated = "listing.deactivated"
)

type ListingEvent struct {
	ProductID    uint64 `json:"product_id"`
	Seller       string `json:"seller"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	PaymentToken string `json:"payment_token"`
	Inventory    uint64 `json:"inventory"`
	IsActive     bool   `json:"is_active"`
}
