// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package rating

import "context"

// StoreFilter narrows the browsing listing. Empty fields match everything.
type StoreFilter struct {
	Name    string
	Address string
}

// Repository defines the data access contract for the rating engine.
type Repository interface {
	// Upsert inserts the rating, or atomically overwrites the caller's
	// previous rating of the same store. Returns the persisted row.
	Upsert(context context.Context, rating *Rating) (*Rating, error)

	// FindStore resolves a store's identity and owner for existence and
	// ownership checks.
	FindStore(context context.Context, storeID string) (*RatedStore, error)

	// ListStores returns every matching store with its live average and
	// the requesting user's own rating.
	ListStores(context context.Context, filter StoreFilter, userID string) ([]*StoreSummary, error)

	// ListForStore returns all ratings of a store joined with their authors.
	ListForStore(context context.Context, storeID string) ([]*StoreRating, error)

	// AverageForStore returns the store's current average, nil when the
	// store has no ratings yet.
	AverageForStore(context context.Context, storeID string) (*float64, error)
}
