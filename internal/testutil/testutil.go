package testutil

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/swenautos/escrow-service/internal/domain"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestStore opens an isolated in-memory database with the full schema.
// The pure-Go sqlite driver keeps the suite free of external services; the
// repositories only use portable SQL.
func NewTestStore(t *testing.T) *postgres.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, postgres.AutoMigrate(db))
	return postgres.NewStore(db)
}

// RecorderPublisher captures published messages for assertions.
type RecorderPublisher struct {
	mu       sync.Mutex
	messages map[string][]domain.Message
}

func NewRecorderPublisher() *RecorderPublisher {
	return &RecorderPublisher{messages: make(map[string][]domain.Message)}
}

func (p *RecorderPublisher) Publish(topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[topic] = append(p.messages[topic], msgs...)
	return nil
}

func (p *RecorderPublisher) Topic(topic string) []domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Message, len(p.messages[topic]))
	copy(out, p.messages[topic])
	return out
}
