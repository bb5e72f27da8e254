package domain

// Store bundles the repositories over a single backing database.
//
// InTx runs fn against a store bound to one database transaction; every
// state-changing operation of the escrow core goes through it so that all
// checks happen before any effect and a failure rolls the whole operation
// back. This reproduces the all-or-nothing execution the original contracts
// got from the chain for free.
type Store interface {
	Listings() ListingRepository
	Orders() OrderRepository
	Disputes() DisputeRepository
	Ratings() RatingRepository
	Vault() VaultRepository
	Settings() SettingsRepository

	InTx(fn func(Store) error) error
}
