package order_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"github.com/swenautos/escrow-service/internal/testutil"
	"github.com/swenautos/escrow-service/internal/usecase/order"
)

const (
	buyer  = "0xbuyer"
	seller = "0xseller"
)

func newOrderUsecase(t *testing.T, store *postgres.Store) *order.DefaultOrderUsecase {
	t.Helper()
	uc, err := order.NewDefaultOrderUsecase(store, nil, nil, 7*24*time.Hour, 100)
	require.NoError(t, err)
	return uc
}

func seedListing(t *testing.T, store *postgres.Store, price int64, inventory uint64) *domain.Listing {
	t.Helper()
	l := &domain.Listing{
		Seller:       seller,
		Name:         "brake pads",
		Category:     "brakes",
		Price:        big.NewInt(price),
		PaymentToken: domain.NativeToken,
		Inventory:    inventory,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.Listings().CreateListing(l))
	return l
}

func deposit(t *testing.T, store *postgres.Store, address string, amount int64) {
	t.Helper()
	require.NoError(t, store.Vault().Credit(address, domain.NativeToken, big.NewInt(amount)))
}

func balance(t *testing.T, store *postgres.Store, address string) *big.Int {
	t.Helper()
	account, err := store.Vault().GetAccount(address, domain.NativeToken)
	require.NoError(t, err)
	return account.Balance
}

func createTokenOrder(t *testing.T, uc *order.DefaultOrderUsecase, productID uint64, qty uint64, amount int64) *domain.Order {
	t.Helper()
	o, err := uc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     productID,
		Seller:        seller,
		Quantity:      qty,
		Amount:        big.NewInt(amount),
		PaymentMethod: domain.PaymentMethodToken,
	})
	require.NoError(t, err)
	return o
}

func TestOrderLifecycle_BuyerRelease(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 2, 200)
	assert.Equal(t, domain.StatusPendingFund, o.Status)
	assert.NotEmpty(t, o.Reference)
	assert.Equal(t, domain.NativeToken, o.PaymentToken)

	funded, err := uc.FundEscrow(buyer, o.ID, big.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFunded, funded.Status)
	assert.NotNil(t, funded.FundedAt)
	assert.Equal(t, "200", funded.EscrowBalance.String())
	assert.Equal(t, "800", balance(t, store, buyer).String())

	reserved, err := store.Listings().GetListingByID(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), reserved.Inventory)
	assert.Equal(t, uint64(2), reserved.Sold)

	shipped, err := uc.MarkShipped(seller, o.ID, "TRACK-42")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	assert.Equal(t, "TRACK-42", shipped.TrackingNumber)
	require.NotNil(t, shipped.AutoReleaseDeadline)

	can, err := uc.CanBuyerConfirmDelivery(buyer, o.ID)
	require.NoError(t, err)
	assert.True(t, can)

	delivered, err := uc.ConfirmDelivery(buyer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)

	completed, err := uc.ReleaseFundsToSeller(buyer, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	assert.Equal(t, "0", completed.EscrowBalance.String())
	assert.Equal(t, "200", balance(t, store, seller).String())

	// Nothing was minted or burned along the way.
	total := new(big.Int).Add(balance(t, store, buyer), balance(t, store, seller))
	total.Add(total, completed.EscrowBalance)
	assert.Equal(t, "1000", total.String())
}

func TestFundEscrow_DoubleFundingRejected(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)

	_, err = uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	assert.ErrorIs(t, err, domain.ErrDoubleFunding)

	// Only one debit happened.
	assert.Equal(t, "900", balance(t, store, buyer).String())
}

func TestFundEscrow_AmountMismatch(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(90))
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
}

func TestFundEscrow_InsufficientFundsRollsBack(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 50)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// The failed funding left no trace: status, stock and balance intact.
	after, err := uc.GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingFund, after.Status)

	intact, err := store.Listings().GetListingByID(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), intact.Inventory)
	assert.Equal(t, uint64(0), intact.Sold)
	assert.Equal(t, "50", balance(t, store, buyer).String())
}

func TestFundEscrow_InsufficientInventoryRollsBack(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 3)
	deposit(t, store, buyer, 1000)

	first := createTokenOrder(t, uc, listing.ID, 2, 200)
	second := createTokenOrder(t, uc, listing.ID, 2, 200)

	_, err := uc.FundEscrow(buyer, first.ID, big.NewInt(200))
	require.NoError(t, err)

	_, err = uc.FundEscrow(buyer, second.ID, big.NewInt(200))
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	assert.Equal(t, "800", balance(t, store, buyer).String())
	after, err := uc.GetOrderByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingFund, after.Status)
}

func TestFundEscrow_GatewayMovesNoVaultFunds(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)

	o, err := uc.CreateOrder(&order.CreateOrderInput{
		Buyer:             buyer,
		ProductID:         listing.ID,
		Seller:            seller,
		Quantity:          1,
		Amount:            big.NewInt(100),
		PaymentToken:      domain.NativeToken,
		PaymentMethod:     domain.PaymentMethodGateway,
		ExternalPaymentID: "psp-789",
	})
	require.NoError(t, err)

	funded, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFunded, funded.Status)
	assert.Equal(t, "0", balance(t, store, buyer).String())

	reserved, err := store.Listings().GetListingByID(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), reserved.Inventory)
}

func TestMarkShipped_OnlySeller(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)

	_, err = uc.MarkShipped(buyer, o.ID, "TRACK-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCancelOrder(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	cancelled, err := uc.CancelOrder(seller, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// A funded order can no longer be cancelled.
	second := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err = uc.FundEscrow(buyer, second.ID, big.NewInt(100))
	require.NoError(t, err)
	_, err = uc.CancelOrder(buyer, second.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = uc.CancelOrder("0xstranger", o.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefundBuyer_RestoresFundsAndStock(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 2, 200)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(200))
	require.NoError(t, err)

	_, err = uc.RefundBuyer(buyer, o.ID, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	refunded, err := uc.RefundBuyer(seller, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, refunded.Status)
	assert.Equal(t, "0", refunded.EscrowBalance.String())
	assert.Equal(t, "1000", balance(t, store, buyer).String())

	restored, err := store.Listings().GetListingByID(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), restored.Inventory)
	assert.Equal(t, uint64(0), restored.Sold)
}

func TestReleaseFunds_OverEscrowRejected(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)
	_, err = uc.MarkShipped(seller, o.ID, "")
	require.NoError(t, err)
	_, err = uc.ConfirmDelivery(buyer, o.ID)
	require.NoError(t, err)

	_, err = uc.ReleaseFundsToSeller(buyer, o.ID, big.NewInt(150))
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
}

func TestAutoRelease_DeadlineDriven(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.SetClock(func() time.Time { return base })

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)
	shipped, err := uc.MarkShipped(seller, o.ID, "TRACK-7")
	require.NoError(t, err)
	assert.Equal(t, base.Add(7*24*time.Hour), shipped.AutoReleaseDeadline.UTC())
	_, err = uc.ConfirmDelivery(buyer, o.ID)
	require.NoError(t, err)

	// The window has not elapsed yet.
	_, err = uc.AutoReleaseIfEligible(o.ID)
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	uc.SetClock(func() time.Time { return base.Add(7*24*time.Hour + time.Minute) })
	require.NoError(t, uc.AutoReleaseEligibleOrders(context.Background()))

	after, err := uc.GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, after.Status)
	assert.Equal(t, "0", after.EscrowBalance.String())
	assert.Equal(t, "100", balance(t, store, seller).String())

	// A second trigger finds nothing to release.
	_, err = uc.AutoReleaseIfEligible(o.ID)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}

func TestAutoRelease_NotBeforeDelivery(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 5)
	deposit(t, store, buyer, 1000)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.SetClock(func() time.Time { return base })

	o := createTokenOrder(t, uc, listing.ID, 1, 100)
	_, err := uc.FundEscrow(buyer, o.ID, big.NewInt(100))
	require.NoError(t, err)
	_, err = uc.MarkShipped(seller, o.ID, "")
	require.NoError(t, err)

	// Shipped but never confirmed: the keeper must not touch it.
	uc.SetClock(func() time.Time { return base.Add(30 * 24 * time.Hour) })
	_, err = uc.AutoReleaseIfEligible(o.ID)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}

func TestCreateOrder_Validation(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 2)

	// Amount must equal price * quantity for token settlement.
	_, err := uc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     listing.ID,
		Seller:        seller,
		Quantity:      2,
		Amount:        big.NewInt(150),
		PaymentMethod: domain.PaymentMethodToken,
	})
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	// Advisory stock check at creation.
	_, err = uc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     listing.ID,
		Seller:        seller,
		Quantity:      3,
		Amount:        big.NewInt(300),
		PaymentMethod: domain.PaymentMethodToken,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	// Deactivated listings accept no new orders.
	require.NoError(t, store.Listings().DeactivateListing(listing.ID))
	_, err = uc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     listing.ID,
		Seller:        seller,
		Quantity:      1,
		Amount:        big.NewInt(100),
		PaymentMethod: domain.PaymentMethodToken,
	})
	assert.ErrorIs(t, err, domain.ErrListingInactive)

	_, err = uc.GetOrderByID(9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrdersByParty(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newOrderUsecase(t, store)
	listing := seedListing(t, store, 100, 50)

	for i := 0; i < 5; i++ {
		createTokenOrder(t, uc, listing.ID, 1, 100)
	}

	orders, total, err := uc.GetOrdersByBuyer(buyer, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, orders, 3)

	orders, total, err = uc.GetOrdersBySeller(seller, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, orders, 2)

	count, err := uc.CountOrders()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
