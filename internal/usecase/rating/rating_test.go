package rating_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"github.com/swenautos/escrow-service/internal/testutil"
	"github.com/swenautos/escrow-service/internal/usecase/order"
	"github.com/swenautos/escrow-service/internal/usecase/rating"
)

const (
	buyer  = "0xbuyer"
	seller = "0xseller"
	owner  = "0xowner"
)

// deliveredOrder drives a fresh order through to DELIVERED.
func deliveredOrder(t *testing.T, store *postgres.Store) *domain.Order {
	t.Helper()
	l := &domain.Listing{
		Seller:       seller,
		Name:         "spark plug set",
		Price:        big.NewInt(40),
		PaymentToken: domain.NativeToken,
		Inventory:    10,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.Listings().CreateListing(l))
	require.NoError(t, store.Vault().Credit(buyer, domain.NativeToken, big.NewInt(40)))

	orderUc, err := order.NewDefaultOrderUsecase(store, nil, nil, 7*24*time.Hour, 100)
	require.NoError(t, err)
	o, err := orderUc.CreateOrder(&order.CreateOrderInput{
		Buyer:         buyer,
		ProductID:     l.ID,
		Seller:        seller,
		Quantity:      1,
		Amount:        big.NewInt(40),
		PaymentMethod: domain.PaymentMethodToken,
	})
	require.NoError(t, err)
	_, err = orderUc.FundEscrow(buyer, o.ID, big.NewInt(40))
	require.NoError(t, err)
	_, err = orderUc.MarkShipped(seller, o.ID, "")
	require.NoError(t, err)
	delivered, err := orderUc.ConfirmDelivery(buyer, o.ID)
	require.NoError(t, err)
	return delivered
}

func TestSubmitRating(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := rating.NewDefaultRatingUsecase(store, nil, nil, owner, 100)
	o := deliveredOrder(t, store)

	_, err := uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 0})
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)
	_, err = uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 6})
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)

	_, err = uc.SubmitRating(&rating.SubmitRatingInput{Caller: seller, OrderID: o.ID, Score: 5})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	submitted, err := uc.SubmitRating(&rating.SubmitRatingInput{
		Caller:     buyer,
		OrderID:    o.ID,
		Score:      4,
		ReviewHash: "Qmabc123",
	})
	require.NoError(t, err)
	assert.Equal(t, seller, submitted.Seller)

	// One rating per order.
	_, err = uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 5})
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)

	aggregate, err := uc.GetSellerRating(seller)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), aggregate.TotalRatings)
	assert.Equal(t, uint64(4), aggregate.TotalScore)
	assert.Equal(t, uint64(4), aggregate.AverageScore())
}

func TestSubmitRating_RequiresDelivery(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := rating.NewDefaultRatingUsecase(store, nil, nil, owner, 100)

	l := &domain.Listing{
		Seller: seller, Name: "oil filter", Price: big.NewInt(10),
		PaymentToken: domain.NativeToken, Inventory: 5, IsActive: true,
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
		Amount:        big.NewInt(10),
		PaymentMethod: domain.PaymentMethodToken,
	})
	require.NoError(t, err)

	_, err = uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestRemoveRating_ReversesAggregate(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := rating.NewDefaultRatingUsecase(store, nil, nil, owner, 100)
	o := deliveredOrder(t, store)

	_, err := uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.RemoveRating(buyer, o.ID), domain.ErrUnauthorized)
	require.NoError(t, uc.RemoveRating(owner, o.ID))

	_, err = uc.GetRatingByOrderID(o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	aggregate, err := uc.GetSellerRating(seller)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), aggregate.TotalRatings)
	assert.Equal(t, uint64(0), aggregate.TotalScore)
	assert.Equal(t, uint64(0), aggregate.AverageScore())

	// The order can be rated again after moderation removed the review.
	_, err = uc.SubmitRating(&rating.SubmitRatingInput{Caller: buyer, OrderID: o.ID, Score: 5})
	require.NoError(t, err)
}

func TestSellerRating_UnratedSellerReadsZero(t *testing.T) {
	store := testutil.NewTestStore(t)
	uc := rating.NewDefaultRatingUsecase(store, nil, nil, owner, 100)

	aggregate, err := uc.GetSellerRating("0xnobody")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), aggregate.TotalRatings)
	assert.Equal(t, uint64(0), aggregate.AverageScore())
}

func TestAverageScore_RoundsDown(t *testing.T) {
	agg := &domain.SellerRating{TotalRatings: 3, TotalScore: 11}
	assert.Equal(t, uint64(3), agg.AverageScore())
}
