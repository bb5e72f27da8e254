package http

import (
	"net/http"

	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/usecase/dispute"
)

type DisputeHandler struct {
	usecase dispute.DisputeUsecase
}

func NewDisputeHandler(uc dispute.DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{usecase: uc}
}

type openDisputeRequest struct {
	OrderID     uint64 `json:"order_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (h *DisputeHandler) Open(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req openDisputeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	opened, err := h.usecase.OpenDispute(&dispute.OpenDisputeInput{
		Caller:      addr,
		OrderID:     req.OrderID,
		Reason:      domain.DisputeReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDisputeResponse(opened))
}

type resolveDisputeRequest struct {
	BuyerRelease  string `json:"buyer_release"`
	SellerRelease string `json:"seller_release"`
}

func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	disputeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req resolveDisputeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	buyerRelease, err := parseAmount(req.BuyerRelease)
	if err != nil {
		writeError(w, err)
		return
	}
	sellerRelease, err := parseAmount(req.SellerRelease)
	if err != nil {
		writeError(w, err)
		return
	}

	resolved, err := h.usecase.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:        addr,
		DisputeID:     disputeID,
		BuyerRelease:  buyerRelease,
		SellerRelease: sellerRelease,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDisputeResponse(resolved))
}

func (h *DisputeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	disputeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.usecase.GetDisputeByID(disputeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDisputeResponse(found))
}

func (h *DisputeHandler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.usecase.GetDisputeByOrderID(orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDisputeResponse(found))
}

func (h *DisputeHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.usecase.CountDisputes()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}
