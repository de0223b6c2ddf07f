// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package rating

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/dberr"
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

// Submit records or overwrites the caller's rating of a store. The store
// must exist; the value must sit inside [MinRating, MaxRating].
func (service *Service) Submit(context context.Context, userID, storeID string, value int) (*Rating, error) {
	if value < MinRating || value > MaxRating {
		return nil, apperr.ValidationError("Rating must be between 1 and 5")
	}

	if _, err := service.repo.FindStore(context, storeID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Store")
		}
		return nil, err
	}

	persisted, err := service.repo.Upsert(context, &Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("rating submitted",
		slog.String("user_id", userID),
		slog.String("store_id", storeID),
		slog.Int("rating", persisted.Rating),
	)

	return persisted, nil
}

// BrowseStores lists every matching store with its live average and the
// caller's own rating.
func (service *Service) BrowseStores(context context.Context, userID string, filter StoreFilter) ([]*StoreSummary, error) {
	return service.repo.ListStores(context, filter, userID)
}

// StoreRatings builds the owner-facing report for one store. Callers that
// do not own the store are rejected even when their role would
// otherwise allow the route.
func (service *Service) StoreRatings(context context.Context, ownerID, storeID string) (*StoreRatingsReport, error) {
	store, err := service.repo.FindStore(context, storeID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Store")
		}
		return nil, err
	}

	if store.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this store")
	}

	average, err := service.repo.AverageForStore(context, storeID)
	if err != nil {
		return nil, err
	}

	ratings, err := service.repo.ListForStore(context, storeID)
	if err != nil {
		return nil, err
	}

	return &StoreRatingsReport{
		StoreID:       store.ID,
		StoreName:     store.Name,
		AverageRating: average,
		Ratings:       ratings,
	}, nil
}
