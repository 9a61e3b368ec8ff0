// Package storage provides object storage for expense receipts.
package storage

import (
	"context"
	"time"
)

// ReceiptStorage abstracts the object store holding expense receipts.
// Callers supply fully qualified object keys namespaced per company.
type ReceiptStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the given key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the given key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object with the given key
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object exists under the given key
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
