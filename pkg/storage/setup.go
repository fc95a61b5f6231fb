package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hostel-drishti/backend/config"
)

// Bundle the configured store plus what the router needs to serve images
type Bundle struct {
	Store   Store
	Disk    *DiskStore // always present; mounted at /uploads
	Images  Opener     // non-nil when GridFS is in use
	closers []func(context.Context) error
}

// Close releases backend connections
func (b *Bundle) Close(ctx context.Context) error {
	var first error
	for _, c := range b.closers {
		if err := c(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Setup builds the store selected by cfg.Driver
func Setup(ctx context.Context, cfg *config.StorageConfig, baseURL string, logger *zap.Logger) (*Bundle, error) {
	disk, err := NewDiskStore(cfg.Disk.Dir, baseURL)
	if err != nil {
		return nil, err
	}
	b := &Bundle{Store: disk, Disk: disk}

	var remote Store
	switch cfg.Driver {
	case "", "disk":
		logger.Info("image store: disk", zap.String("dir", cfg.Disk.Dir))
		return b, nil
	case "spaces":
		spaces, err := NewSpacesStore(&cfg.Spaces)
		if err != nil {
			return nil, err
		}
		remote = spaces
	case "gridfs":
		gfs, err := NewGridFSStore(ctx, &cfg.GridFS, baseURL)
		if err != nil {
			return nil, err
		}
		b.Images = gfs
		b.closers = append(b.closers, gfs.Close)
		remote = gfs
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	b.Store = remote
	if cfg.FallbackToDisk {
		b.Store = NewFallbackStore(remote, disk, logger)
	}
	logger.Info("image store ready", zap.String("store", b.Store.Name()))
	return b, nil
}
