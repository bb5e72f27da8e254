package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/usecase/order"
)

type OrderHandler struct {
	usecase order.OrderUsecase
}

func NewOrderHandler(uc order.OrderUsecase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

type createOrderRequest struct {
	ProductID         uint64 `json:"product_id"`
	Seller            string `json:"seller"`
	Quantity          uint64 `json:"quantity"`
	Amount            string `json:"amount"`
	PaymentToken      string `json:"payment_token"`
	PaymentMethod     string `json:"payment_method"`
	ExternalPaymentID string `json:"external_payment_id"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	buyer, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.PaymentMethodToken
	}

	created, err := h.usecase.CreateOrder(&order.CreateOrderInput{
		Buyer:             buyer,
		ProductID:         req.ProductID,
		Seller:            req.Seller,
		Quantity:          req.Quantity,
		Amount:            amount,
		PaymentToken:      req.PaymentToken,
		PaymentMethod:     method,
		ExternalPaymentID: req.ExternalPaymentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (h *OrderHandler) Fund(w http.ResponseWriter, r *http.Request) {
	buyer, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	funded, err := h.usecase.FundEscrow(buyer, orderID, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(funded))
}

type shipRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

func (h *OrderHandler) Ship(w http.ResponseWriter, r *http.Request) {
	seller, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req shipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	shipped, err := h.usecase.MarkShipped(seller, orderID, req.TrackingNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(shipped))
}

func (h *OrderHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	buyer, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	delivered, err := h.usecase.ConfirmDelivery(buyer, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(delivered))
}

func (h *OrderHandler) CanConfirm(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	can, err := h.usecase.CanBuyerConfirmDelivery(addr, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"can_confirm": can})
}

func (h *OrderHandler) Release(w http.ResponseWriter, r *http.Request) {
	buyer, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	completed, err := h.usecase.ReleaseFundsToSeller(buyer, orderID, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(completed))
}

func (h *OrderHandler) Refund(w http.ResponseWriter, r *http.Request) {
	seller, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	refunded, err := h.usecase.RefundBuyer(seller, orderID, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(refunded))
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	cancelled, err := h.usecase.CancelOrder(addr, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(cancelled))
}

// AutoRelease is deliberately unauthenticated. Eligibility is decided by
// stored state and the clock, so any caller is as good as the keeper.
func (h *OrderHandler) AutoRelease(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	completed, err := h.usecase.AutoReleaseIfEligible(orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(completed))
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.usecase.GetOrderByID(orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(found))
}

func (h *OrderHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.usecase.CountOrders()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *OrderHandler) ListByBuyer(w http.ResponseWriter, r *http.Request) {
	buyer := chi.URLParam(r, "address")
	orders, total, err := h.usecase.GetOrdersByBuyer(buyer, queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: toOrderResponses(orders), Total: total})
}

func (h *OrderHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "address")
	orders, total, err := h.usecase.GetOrdersBySeller(seller, queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: toOrderResponses(orders), Total: total})
}
