// README: Cache read service.
package cache

import (
	"context"
	"log/slog"
)

type Lister interface {
	List(ctx context.Context) ([]Entry, int, error)
}

type Service struct {
	store Lister
	log   *slog.Logger
}

func NewService(store Lister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, log: logger}
}

// List returns cache entries newest-first; never nil on success.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, skipped, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.log.Warn("skipped malformed cache entries", "count", skipped)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
