package http

import (
	"time"

	"github.com/swenautos/escrow-service/internal/domain"
)

// Amounts travel as base-10 strings: big.Int values do not survive JSON
// numbers intact.

type listingResponse struct {
	ID           uint64    `json:"id"`
	Seller       string    `json:"seller"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Price        string    `json:"price"`
	PaymentToken string    `json:"payment_token"`
	Inventory    uint64    `json:"inventory"`
	Sold         uint64    `json:"sold"`
	IsActive     bool      `json:"is_active"`
	ContentHash  string    `json:"content_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toListingResponse(l *domain.Listing) *listingResponse {
	return &listingResponse{
		ID:           l.ID,
		Seller:       l.Seller,
		Name:         l.Name,
		Description:  l.Description,
		Category:     l.Category,
		Price:        l.Price.String(),
		PaymentToken: l.PaymentToken,
		Inventory:    l.Inventory,
		Sold:         l.Sold,
		IsActive:     l.IsActive,
		ContentHash:  l.ContentHash,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []*listingResponse {
	out := make([]*listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

type orderResponse struct {
	ID                  uint64     `json:"id"`
	Reference           string     `json:"reference"`
	Buyer               string     `json:"buyer"`
	Seller              string     `json:"seller"`
	ProductID           uint64     `json:"product_id"`
	Quantity            uint64     `json:"quantity"`
	Amount              string     `json:"amount"`
	EscrowBalance       string     `json:"escrow_balance"`
	PaymentToken        string     `json:"payment_token"`
	PaymentMethod       string     `json:"payment_method"`
	ExternalPaymentID   string     `json:"external_payment_id,omitempty"`
	Status              string     `json:"status"`
	StatusCode          int        `json:"status_code"`
	TrackingNumber      string     `json:"tracking_number,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	FundedAt            *time.Time `json:"funded_at,omitempty"`
	ShippedAt           *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt         *time.Time `json:"delivered_at,omitempty"`
	AutoReleaseDeadline *time.Time `json:"auto_release_deadline,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func toOrderResponse(o *domain.Order) *orderResponse {
	return &orderResponse{
		ID:                  o.ID,
		Reference:           o.Reference,
		Buyer:               o.Buyer,
		Seller:              o.Seller,
		ProductID:           o.ProductID,
		Quantity:            o.Quantity,
		Amount:              o.Amount.String(),
		EscrowBalance:       o.EscrowBalance.String(),
		PaymentToken:        o.PaymentToken,
		PaymentMethod:       string(o.PaymentMethod),
		ExternalPaymentID:   o.ExternalPaymentID,
		Status:              string(o.Status),
		StatusCode:          o.Status.Code(),
		TrackingNumber:      o.TrackingNumber,
		CreatedAt:           o.CreatedAt,
		FundedAt:            o.FundedAt,
		ShippedAt:           o.ShippedAt,
		DeliveredAt:         o.DeliveredAt,
		AutoReleaseDeadline: o.AutoReleaseDeadline,
		UpdatedAt:           o.UpdatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []*orderResponse {
	out := make([]*orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type disputeResponse struct {
	ID            uint64     `json:"id"`
	OrderID       uint64     `json:"order_id"`
	Initiator     string     `json:"initiator"`
	Reason        string     `json:"reason"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Arbitrator    string     `json:"arbitrator,omitempty"`
	BuyerRelease  string     `json:"buyer_release,omitempty"`
	SellerRelease string     `json:"seller_release,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

func toDisputeResponse(d *domain.Dispute) *disputeResponse {
	resp := &disputeResponse{
		ID:          d.ID,
		OrderID:     d.OrderID,
		Initiator:   d.Initiator,
		Reason:      string(d.Reason),
		Description: d.Description,
		Status:      string(d.Status),
		Arbitrator:  d.Arbitrator,
		CreatedAt:   d.CreatedAt,
		ResolvedAt:  d.ResolvedAt,
	}
	if d.BuyerRelease != nil {
		resp.BuyerRelease = d.BuyerRelease.String()
	}
	if d.SellerRelease != nil {
		resp.SellerRelease = d.SellerRelease.String()
	}
	return resp
}

type ratingResponse struct {
	OrderID    uint64    `json:"order_id"`
	Buyer      string    `json:"buyer"`
	Seller     string    `json:"seller"`
	Score      uint8     `json:"score"`
	ReviewHash string    `json:"review_hash,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toRatingResponse(r *domain.Rating) *ratingResponse {
	return &ratingResponse{
		OrderID:    r.OrderID,
		Buyer:      r.Buyer,
		Seller:     r.Seller,
		Score:      r.Score,
		ReviewHash: r.ReviewHash,
		CreatedAt:  r.CreatedAt,
	}
}

func toRatingResponses(ratings []*domain.Rating) []*ratingResponse {
	out := make([]*ratingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, toRatingResponse(r))
	}
	return out
}

type sellerRatingResponse struct {
	Seller       string `json:"seller"`
	TotalRatings uint64 `json:"total_ratings"`
	TotalScore   uint64 `json:"total_score"`
	AverageScore uint64 `json:"average_score"`
}

func toSellerRatingResponse(s *domain.SellerRating) *sellerRatingResponse {
	return &sellerRatingResponse{
		Seller:       s.Seller,
		TotalRatings: s.TotalRatings,
		TotalScore:   s.TotalScore,
		AverageScore: s.AverageScore(),
	}
}

type vaultAccountResponse struct {
	Address string `json:"address"`
	Token   string `json:"token"`
	Balance string `json:"balance"`
}

func toVaultAccountResponse(a *domain.VaultAccount) *vaultAccountResponse {
	return &vaultAccountResponse{
		Address: a.Address,
		Token:   a.Token,
		Balance: a.Balance.String(),
	}
}

type countResponse struct {
	Count int64 `json:"count"`
}
