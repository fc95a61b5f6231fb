package storage

import (
	"context"

	"go.uber.org/zap"
)

// FallbackStore tries primary and falls back to secondary on failure, so a
// remote storage outage does not block a warden's daily submission
type FallbackStore struct {
	primary   Store
	secondary Store
	logger    *zap.Logger
}

// NewFallbackStore wraps primary with secondary
func NewFallbackStore(primary, secondary Store, logger *zap.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary, logger: logger}
}

func (s *FallbackStore) Name() string { return s.primary.Name() + "+" + s.secondary.Name() }

func (s *FallbackStore) Save(ctx context.Context, obj Object) (string, error) {
	url, err := s.primary.Save(ctx, obj)
	if err == nil {
		return url, nil
	}

	s.logger.Warn("primary image store failed, falling back",
		zap.String("primary", s.primary.Name()),
		zap.String("fallback", s.secondary.Name()),
		zap.String("folder", obj.Folder),
		zap.Error(err),
	)
	return s.secondary.Save(ctx, obj)
}
