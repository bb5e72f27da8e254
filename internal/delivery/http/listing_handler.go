package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swenautos/escrow-service/internal/usecase/listing"
)

type ListingHandler struct {
	usecase listing.ListingUsecase
}

func NewListingHandler(uc listing.ListingUsecase) *ListingHandler {
	return &ListingHandler{usecase: uc}
}

type createListingRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	PaymentToken string `json:"payment_token"`
	Inventory    uint64 `json:"inventory"`
	ContentHash  string `json:"content_hash"`
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	seller, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createListingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	price, err := parseAmount(req.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.usecase.CreateListing(&listing.CreateListingInput{
		Seller:       seller,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        price,
		PaymentToken: req.PaymentToken,
		Inventory:    req.Inventory,
		ContentHash:  req.ContentHash,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toListingResponse(created))
}

type updateListingRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Price        *string `json:"price"`
	ContentHash  *string `json:"content_hash"`
	AddInventory *uint64 `json:"add_inventory"`
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	seller, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateListingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input := &listing.UpdateListingInput{
		ProductID:    productID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		ContentHash:  req.ContentHash,
		AddInventory: req.AddInventory,
	}
	if req.Price != nil {
		price, err := parseAmount(*req.Price)
		if err != nil {
			writeError(w, err)
			return
		}
		input.Price = price
	}

	updated, err := h.usecase.UpdateListing(seller, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(updated))
}

func (h *ListingHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	seller, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.usecase.DeactivateListing(seller, productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.usecase.GetListingByID(productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(found))
}

func (h *ListingHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	listings, total, err := h.usecase.GetActiveListings(queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: toListingResponses(listings), Total: total})
}

func (h *ListingHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "address")
	listings, total, err := h.usecase.GetSellerListings(seller, queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: toListingResponses(listings), Total: total})
}

func (h *ListingHandler) Available(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	qty := queryInt(r, "qty", 1)
	if qty < 1 {
		qty = 1
	}
	available, err := h.usecase.IsProductAvailable(productID, uint64(qty))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}
