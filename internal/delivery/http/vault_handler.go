package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/usecase/vault"
)

type VaultHandler struct {
	usecase vault.VaultUsecase
}

func NewVaultHandler(uc vault.VaultUsecase) *VaultHandler {
	return &VaultHandler{usecase: uc}
}

type depositRequest struct {
	Address string `json:"address"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

func (h *VaultHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req depositRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	token := req.Token
	if token == "" {
		token = domain.NativeToken
	}

	account, err := h.usecase.Deposit(addr, req.Address, token, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVaultAccountResponse(account))
}

func (h *VaultHandler) Balance(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	token := r.URL.Query().Get("token")
	if token == "" {
		token = domain.NativeToken
	}

	account, err := h.usecase.GetBalance(address, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVaultAccountResponse(account))
}
