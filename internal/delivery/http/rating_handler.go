package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swenautos/escrow-service/internal/usecase/rating"
)

type RatingHandler struct {
	usecase rating.RatingUsecase
}

func NewRatingHandler(uc rating.RatingUsecase) *RatingHandler {
	return &RatingHandler{usecase: uc}
}

type submitRatingRequest struct {
	OrderID    uint64 `json:"order_id"`
	Score      uint8  `json:"score"`
	ReviewHash string `json:"review_hash"`
}

func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitRatingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	submitted, err := h.usecase.SubmitRating(&rating.SubmitRatingInput{
		Caller:     addr,
		OrderID:    req.OrderID,
		Score:      req.Score,
		ReviewHash: req.ReviewHash,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRatingResponse(submitted))
}

func (h *RatingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.usecase.RemoveRating(addr, orderID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RatingHandler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.usecase.GetRatingByOrderID(orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponse(found))
}

func (h *RatingHandler) SellerAggregate(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "address")
	aggregate, err := h.usecase.GetSellerRating(seller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSellerRatingResponse(aggregate))
}

func (h *RatingHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "address")
	ratings, total, err := h.usecase.GetSellerRatings(seller, queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: toRatingResponses(ratings), Total: total})
}

func (h *RatingHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.usecase.CountRatings()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}
