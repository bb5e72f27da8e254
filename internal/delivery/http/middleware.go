package http

import (
	"fmt"
	"net/http"

	"github.com/swenautos/escrow-service/internal/domain"
)

// callerHeader carries the wallet address the gateway authenticated. The
// gateway signs requests upstream; this service trusts the header the way
// the contract trusted msg.sender.
const callerHeader = "X-Wallet-Address"

func caller(r *http.Request) string {
	return r.Header.Get(callerHeader)
}

func requireCaller(r *http.Request) (string, error) {
	addr := caller(r)
	if addr == "" {
		return "", fmt.Errorf("%w: %s header required", domain.ErrUnauthorized, callerHeader)
	}
	return addr, nil
}
