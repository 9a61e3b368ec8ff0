package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTxManager implements shared.TxManager on top of GORM transactions.
// The open transaction travels in the context, so repositories called
// inside WithinTx join it transparently and standalone calls keep using
// their own connection.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside a single transaction. Any error returned by fn
// rolls the whole transaction back.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// dbFrom returns the transaction carried by ctx, or fallback when the
// call runs outside WithinTx.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
