package domain

// SettingsRepository holds the mutable service configuration that survives
// restarts. Currently only the arbitration authority address lives here.
type SettingsRepository interface {
	GetArbitrator() (string, error)
	SetArbitrator(address string) error
}
