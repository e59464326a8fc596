package repositories

import (
	"fmt"

	"aegis/internal/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store bundles the repositories behind one storage driver.
type Store struct {
	FeePolicies  FeePolicyRepository
	DevFund      DevFundRepository
	Transactions TransactionRepository
	Users        UserRepository

	// DB is nil for the memory driver.
	DB *gorm.DB
}

// NewMemoryStore returns a Store whose state lives only in this process.
func NewMemoryStore() *Store {
	return &Store{
		FeePolicies:  NewMemoryFeePolicyRepository(),
		DevFund:      NewMemoryDevFundRepository(),
		Transactions: NewMemoryTransactionRepository(),
		Users:        NewMemoryUserRepository(),
	}
}

// NewGormStore returns a Store backed by db.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		FeePolicies:  NewFeePolicyRepository(db),
		DevFund:      NewDevFundRepository(db),
		Transactions: NewTransactionRepository(db),
		Users:        NewUserRepository(db),
		DB:           db,
	}
}

// OpenStore opens the store selected by cfg.StoreDriver.
func OpenStore(cfg *config.Config, zl *zap.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		zl.Warn("using in-memory store, state is lost on restart")
		return NewMemoryStore(), nil
	case config.StoreDriverPostgres:
		db, err := InitDB(cfg.Database, zl)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Close releases the underlying database connection, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
