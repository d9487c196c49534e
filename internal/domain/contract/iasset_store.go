package contract

import (
	"context"
	"io"
)

// StoredAsset identifies an uploaded object in the external asset store.
type StoredAsset struct {
	ExternalID string
	URL        string
}

// IAssetStore is the external, content-addressed blob store for profile pictures.
type IAssetStore interface {
	// Upload stores the content under a fresh id. size may be -1 when unknown.
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (*StoredAsset, error)
	Delete(ctx context.Context, externalID string) error
}
