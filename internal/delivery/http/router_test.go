package http_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	delivery "github.com/swenautos/escrow-service/internal/delivery/http"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"github.com/swenautos/escrow-service/internal/testutil"
	"github.com/swenautos/escrow-service/internal/usecase/dispute"
	"github.com/swenautos/escrow-service/internal/usecase/listing"
	"github.com/swenautos/escrow-service/internal/usecase/order"
	"github.com/swenautos/escrow-service/internal/usecase/rating"
	"github.com/swenautos/escrow-service/internal/usecase/vault"
)

const (
	buyer  = "0xbuyer"
	seller = "0xseller"
	owner  = "0xowner"
)

func newTestServer(t *testing.T) (*httptest.Server, *postgres.Store) {
	t.Helper()
	store := testutil.NewTestStore(t)

	listingUc := listing.NewDefaultListingUsecase(store, nil, nil, 100)
	orderUc, err := order.NewDefaultOrderUsecase(store, nil, nil, 7*24*time.Hour, 100)
	require.NoError(t, err)
	disputeUc := dispute.NewDefaultDisputeUsecase(store, nil, nil, owner)
	ratingUc := rating.NewDefaultRatingUsecase(store, nil, nil, owner, 100)
	vaultUc := vault.NewDefaultVaultUsecase(store, owner)

	router := delivery.NewRouter(delivery.Handlers{
		Listings: delivery.NewListingHandler(listingUc),
		Orders:   delivery.NewOrderHandler(orderUc),
		Disputes: delivery.NewDisputeHandler(disputeUc),
		Ratings:  delivery.NewRatingHandler(ratingUc),
		Vault:    delivery.NewVaultHandler(vaultUc),
		Admin:    delivery.NewAdminHandler(disputeUc),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url, wallet string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHTTPOrderFlow(t *testing.T) {
	server, store := newTestServer(t)
	require.NoError(t, store.Vault().Credit(buyer, domain.NativeToken, big.NewInt(500)))

	// No wallet header is a 403.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/listings", "", map[string]any{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/listings", seller, map[string]any{
		"name":      "shock absorber",
		"price":     "125",
		"inventory": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var createdListing struct {
		ID           uint64 `json:"id"`
		PaymentToken string `json:"payment_token"`
	}
	decode(t, resp, &createdListing)
	assert.Equal(t, domain.NativeToken, createdListing.PaymentToken)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/orders", buyer, map[string]any{
		"product_id": createdListing.ID,
		"seller":     seller,
		"quantity":   2,
		"amount":     "250",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var createdOrder struct {
		ID     uint64 `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &createdOrder)
	assert.Equal(t, string(domain.StatusPendingFund), createdOrder.Status)

	orderURL := server.URL + "/api/v1/orders/"
	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/fund", buyer, map[string]any{"amount": "250"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Funding twice maps the conflict onto 409.
	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/fund", buyer, map[string]any{"amount": "250"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The seller cannot confirm delivery.
	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/ship", seller, map[string]any{"tracking_number": "T-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/confirm-delivery", seller, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/confirm-delivery", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, orderURL+itoa(createdOrder.ID)+"/release", buyer, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var completed struct {
		Status        string `json:"status"`
		EscrowBalance string `json:"escrow_balance"`
	}
	decode(t, resp, &completed)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	assert.Equal(t, "0", completed.EscrowBalance)

	// Unknown order is a 404, malformed id a 400.
	resp = doJSON(t, http.MethodGet, orderURL+"9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, orderURL+"abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPVaultAndAdmin(t *testing.T) {
	server, _ := newTestServer(t)

	// Deposits are owner-gated.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/vault/deposit", buyer, map[string]any{
		"address": buyer, "amount": "100",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/vault/deposit", owner, map[string]any{
		"address": buyer, "amount": "100",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/vault/"+buyer+"/balance", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var account struct {
		Balance string `json:"balance"`
	}
	decode(t, resp, &account)
	assert.Equal(t, "100", account.Balance)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/arbitrator", owner, map[string]any{
		"address": "0xarb",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func itoa(v uint64) string {
	return new(big.Int).SetUint64(v).String()
}
