// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

// Package rating implements the store rating engine.
//
// A user holds at most one rating per store. Re-submitting overwrites the
// previous value in a single atomic statement, and every published average
// is computed by the database at read time. There is no cached aggregate
// to drift out of sync.
package rating

import "time"

// MinRating and MaxRating bound the accepted rating values.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's current rating of one store.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreSummary is a store row as seen by a browsing user: the overall
// average plus the caller's own submitted rating, if any.
type StoreSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	OverallRating *float64 `json:"overall_rating"`
	UserRating    *int     `json:"user_rating"`
}

// RatedStore carries the store fields the rating engine needs for
// existence and ownership checks.
type RatedStore struct {
	ID      string
	Name    string
	OwnerID string
}

// StoreRating is a single rating joined with its author, as shown to the
// store's owner.
type StoreRating struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreRatingsReport is the owner-facing view of one store's ratings.
type StoreRatingsReport struct {
	StoreID       string         `json:"store_id"`
	StoreName     string         `json:"store_name"`
	AverageRating *float64       `json:"average_rating"`
	Ratings       []*StoreRating `json:"ratings"`
}

// # Field Identifiers

const (
	FieldStoreID = "store_id"
	FieldRating  = "rating"
)
