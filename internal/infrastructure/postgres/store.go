package postgres

import (
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

// Store implements domain.Store over a gorm DB handle. InTx hands callers a
// store bound to the transaction, so every repository touched inside commits
// or rolls back as one unit.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Listings() domain.ListingRepository {
	return repository.NewDefaultListingRepository(s.db)
}

func (s *Store) Orders() domain.OrderRepository {
	return repository.NewDefaultOrderRepository(s.db)
}

func (s *Store) Disputes() domain.DisputeRepository {
	return repository.NewDefaultDisputeRepository(s.db)
}

func (s *Store) Ratings() domain.RatingRepository {
	return repository.NewDefaultRatingRepository(s.db)
}

func (s *Store) Vault() domain.VaultRepository {
	return repository.NewDefaultVaultRepository(s.db)
}

func (s *Store) Settings() domain.SettingsRepository {
	return repository.NewDefaultSettingsRepository(s.db)
}

func (s *Store) InTx(fn func(domain.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
