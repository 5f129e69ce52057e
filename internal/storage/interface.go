package storage

import (
	"context"
	"time"
)

// StorageClient defines the interface for report storage operations
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores one report artifact in the folder for the given run timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports lists recent report index pages, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)
}
