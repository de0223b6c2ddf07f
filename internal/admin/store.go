// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package admin

import (
	"context"

	store "github.com/nmtri/storeratings/internal/directory/store"
	"github.com/nmtri/storeratings/internal/rating"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// Repository defines the privileged data access the admin surface needs
// beyond what the identity layer already provides.
type Repository interface {

	/*
		CountAll returns the platform totals for the dashboard.

		Parameters:
		  - context: context.Context

		Returns:
		  - *DashboardCounts: Users, stores, and ratings totals
		  - error: Database retrieval failures
	*/
	CountAll(context context.Context) (*DashboardCounts, error)

	/*
		ListUsers returns directory users matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: UserFilter

		Returns:
		  - []*auth.User: Matching accounts
		  - error: Database retrieval failures
	*/
	ListUsers(context context.Context, filter UserFilter) ([]*auth.User, error)

	/*
		OwnerAverage returns the average rating across every store owned by
		the given user, nil when none of their stores has ratings.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - *float64: Aggregate, nil when unrated
		  - error: Database retrieval failures
	*/
	OwnerAverage(context context.Context, ownerID string) (*float64, error)

	/*
		CreateStore persists a new store row.

		Parameters:
		  - context: context.Context
		  - entry: *store.Store

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	CreateStore(context context.Context, entry *store.Store) error

	/*
		ListStores returns directory stores matching the filter, each with
		its live average.

		Parameters:
		  - context: context.Context
		  - filter: StoreFilter

		Returns:
		  - []*StoreRow: Matching stores
		  - error: Database retrieval failures
	*/
	ListStores(context context.Context, filter StoreFilter) ([]*StoreRow, error)

	/*
		GetStore returns one store with its live average.

		Parameters:
		  - context: context.Context
		  - storeID: string

		Returns:
		  - *StoreRow: Hydrated store
		  - error: apperr.NotFound or database failures
	*/
	GetStore(context context.Context, storeID string) (*StoreRow, error)

	/*
		ListStoreRatings returns every rating submitted for the store, each
		joined with its author, newest first.

		Parameters:
		  - context: context.Context
		  - storeID: string

		Returns:
		  - []*rating.StoreRating: Ratings with author name and email
		  - error: Database retrieval failures
	*/
	ListStoreRatings(context context.Context, storeID string) ([]*rating.StoreRating, error)
}
