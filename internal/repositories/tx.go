package repositories

import (
	"gorm.io/gorm"
)

// TxManager is the transaction boundary for every balance-affecting
// operation: the status transition and the balance mutation commit together
// or not at all. Tests substitute a fake that runs the function without a
// database.
type TxManager interface {
	// DB returns the shared connection handle for non-transactional reads.
	DB() *gorm.DB

	// Transaction runs fn atomically; any error rolls everything back.
	Transaction(fn func(tx *gorm.DB) error) error
}

type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) DB() *gorm.DB {
	return m.db
}

func (m *GormTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
