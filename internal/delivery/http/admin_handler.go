package http

import (
	"net/http"

	"github.com/swenautos/escrow-service/internal/usecase/dispute"
)

type AdminHandler struct {
	disputes dispute.DisputeUsecase
}

func NewAdminHandler(disputes dispute.DisputeUsecase) *AdminHandler {
	return &AdminHandler{disputes: disputes}
}

type setArbitratorRequest struct {
	Address string `json:"address"`
}

func (h *AdminHandler) SetArbitrator(w http.ResponseWriter, r *http.Request) {
	addr, err := requireCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req setArbitratorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.disputes.SetArbitrator(addr, req.Address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"arbitrator": req.Address})
}

func (h *AdminHandler) GetArbitrator(w http.ResponseWriter, r *http.Request) {
	arbitrator, err := h.disputes.GetArbitrator()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"arbitrator": arbitrator})
}
