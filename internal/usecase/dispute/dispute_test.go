package dispute_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"github.com/swenautos/escrow-service/internal/testutil"
	"github.com/swenautos/escrow-service/internal/usecase/dispute"
	"github.com/swenautos/escrow-service/internal/usecase/order"
)

const (
	buyer      = "0xbuyer"
	seller     = "0xseller"
	arbitrator = "0xarbitrator"
	owner      = "0xowner"
)

// fundedOrder drives a fresh order to FUNDED holding 200 tokens.
func fundedOrder(t *testing.T, store *postgres.Store) *domain.Order {
	t.Helper()
	l := &domain.Listing{
		Seller:       seller,
		Name:         "alternator",
		Price:        big.NewInt(100),
		PaymentToken: domain.NativeToken,
		Inventory:    10,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.Listings().CreateListing(l))
	require.NoError(t, store.Vault().Credit(buyer, domain.NativeToken, big.NewInt(200)))

	orderUc, err := order.NewDefaultOrderUsecase(store, nil, nil, 7*24*time.Hour, 100)
	require.NoError(t, err)
	o, err := orderUc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     l.ID,
		Seller:        seller,
		Quantity:      2,
		Amount:        big.NewInt(200),
		PaymentMethod: domain.PaymentMethodToken,
	})
	require.NoError(t, err)
	funded, err := orderUc.FundEscrow(buyer, o.ID, big.NewInt(200))
	require.NoError(t, err)
	return funded
}

func newDisputeUsecase(t *testing.T, store *postgres.Store) *dispute.DefaultDisputeUsecase {
	t.Helper()
	uc := dispute.NewDefaultDisputeUsecase(store, nil, nil, owner)
	require.NoError(t, store.Settings().SetArbitrator(arbitrator))
	return uc
}

func TestOpenDispute(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newDisputeUsecase(t, store)
	o := fundedOrder(t, store)

	_, err := uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  "0xstranger",
		OrderID: o.ID,
		Reason:  domain.ReasonQualityIssue,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  buyer,
		OrderID: o.ID,
		Reason:  domain.DisputeReason("BAD_VIBES"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	opened, err := uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:      buyer,
		OrderID:     o.ID,
		Reason:      domain.ReasonDamagedInTransit,
		Description: "casing cracked on arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeOpen, opened.Status)
	assert.Equal(t, buyer, opened.Initiator)

	frozen, err := store.Orders().GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisputed, frozen.Status)

	// One dispute per order: the status gate rejects a second one.
	_, err = uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  seller,
		OrderID: o.ID,
		Reason:  domain.ReasonOther,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestOpenDispute_RequiresHeldFunds(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newDisputeUsecase(t, store)

	l := &domain.Listing{
		Seller: seller, Name: "radiator", Price: big.NewInt(50),
		PaymentToken: domain.NativeToken, Inventory: 1, IsActive: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Listings().CreateListing(l))

	orderUc, err := order.NewDefaultOrderUsecase(store, nil, nil, 7*24*time.Hour, 100)
	require.NoError(t, err)
	o, err := orderUc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     l.ID,
		Seller:        seller,
		Quantity:      1,
		Amount:        big.NewInt(50),
		PaymentMethod: domain.PaymentMethodToken,
	})
	require.NoError(t, err)

	// Unfunded orders cannot be disputed.
	_, err = uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  buyer,
		OrderID: o.ID,
		Reason:  domain.ReasonProductNotReceived,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestResolveDispute_SplitsEscrow(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newDisputeUsecase(t, store)
	o := fundedOrder(t, store)

	opened, err := uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  buyer,
		OrderID: o.ID,
		Reason:  domain.ReasonWrongItem,
	})
	require.NoError(t, err)

	// Only the arbitrator rules.
	_, err = uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:       seller,
		DisputeID:    opened.ID,
		BuyerRelease: big.NewInt(200),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The split cannot exceed what escrow holds.
	_, err = uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:        arbitrator,
		DisputeID:     opened.ID,
		BuyerRelease:  big.NewInt(150),
		SellerRelease: big.NewInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	resolved, err := uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:        arbitrator,
		DisputeID:     opened.ID,
		BuyerRelease:  big.NewInt(120),
		SellerRelease: big.NewInt(80),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeResolved, resolved.Status)
	assert.Equal(t, arbitrator, resolved.Arbitrator)
	require.NotNil(t, resolved.ResolvedAt)

	buyerAccount, err := store.Vault().GetAccount(buyer, domain.NativeToken)
	require.NoError(t, err)
	sellerAccount, err := store.Vault().GetAccount(seller, domain.NativeToken)
	require.NoError(t, err)
	assert.Equal(t, "120", buyerAccount.Balance.String())
	assert.Equal(t, "80", sellerAccount.Balance.String())

	settled, err := store.Orders().GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, settled.Status)
	assert.Equal(t, "0", settled.EscrowBalance.String())

	// Ruling twice is rejected, whatever the second split asks for.
	_, err = uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:        arbitrator,
		DisputeID:     opened.ID,
		BuyerRelease:  big.NewInt(200),
		SellerRelease: big.NewInt(0),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateResolution)

	_, err = uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:    arbitrator,
		DisputeID: opened.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateResolution)
}

func TestResolveDispute_PartialSplitLeavesResidual(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newDisputeUsecase(t, store)
	o := fundedOrder(t, store)

	opened, err := uc.OpenDispute(&dispute.OpenDisputeInput{
		Caller:  seller,
		OrderID: o.ID,
		Reason:  domain.ReasonOther,
	})
	require.NoError(t, err)

	_, err = uc.ResolveDispute(&dispute.ResolveDisputeInput{
		Caller:        arbitrator,
		DisputeID:     opened.ID,
		BuyerRelease:  big.NewInt(90),
		SellerRelease: big.NewInt(90),
	})
	require.NoError(t, err)

	settled, err := store.Orders().GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "20", settled.EscrowBalance.String())
}

func TestSetArbitrator_OwnerOnly(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := newDisputeUsecase(t, store)

	assert.ErrorIs(t, uc.SetArbitrator(buyer, "0xnew"), domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.SetArbitrator(owner, ""), domain.ErrInvalidArgument)

	require.NoError(t, uc.SetArbitrator(owner, "0xnew"))
	stored, err := uc.GetArbitrator()
	require.NoError(t, err)
	assert.Equal(t, "0xnew", stored)
}

func TestEnsureArbitrator(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := dispute.NewDefaultDisputeUsecase(store, nil, nil, owner)

	require.NoError(t, uc.EnsureArbitrator("0xseed"))
	stored, err := uc.GetArbitrator()
	require.NoError(t, err)
	assert.Equal(t, "0xseed", stored)

	// A stored address survives later boots with a different default.
	require.NoError(t, uc.EnsureArbitrator("0xother"))
	stored, err = uc.GetArbitrator()
	require.NoError(t, err)
	assert.Equal(t, "0xseed", stored)
}
