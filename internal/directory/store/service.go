package store

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// MyStores lists the caller's stores with their live averages. An owner
// with no assigned stores gets an empty list, not an error.
func (service *Service) MyStores(context context.Context, ownerID string) ([]*OwnedStore, error) {
	return service.repo.ListByOwner(context, ownerID)
}
