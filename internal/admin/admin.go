// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

/*
Package admin implements the platform administration surface.

Administrators manage the directory itself: they enroll users with explicit
roles, register stores, assign owners, and inspect platform totals. Every
route in this package sits behind an exact-match admin role gate.

# Relationship to other domains

User rows are the same [auth.User] entities the identity layer owns; this
package adds directory-wide listing, filtering, and privileged creation on
top of them. Averages shown here come from the same database-side
aggregation the rating engine uses.
*/
package admin

import (
	"time"

	"github.com/nmtri/storeratings/internal/rating"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// # View Models

// DashboardCounts is the admin landing summary.
type DashboardCounts struct {
	TotalUsers   int `json:"total_users"`
	TotalStores  int `json:"total_stores"`
	TotalRatings int `json:"total_ratings"`
}

// UserDetail is a directory user plus owner-specific aggregates. For
// store_owner accounts RatedAverage is the average across all ratings of
// their stores; it stays nil for every other role.
type UserDetail struct {
	*auth.User
	RatedAverage *float64 `json:"rating,omitempty"`
}

// StoreRow is a directory store with its live average.
type StoreRow struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       string    `json:"owner_id,omitempty"`
	AverageRating *float64  `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StoreDetail is the single-store admin view: the directory row plus the
// individual ratings behind its average, each joined with its author.
type StoreDetail struct {
	StoreRow
	Ratings []*rating.StoreRating `json:"ratings"`
}

// # Filters

// UserFilter narrows the user listing. Text fields match as substrings,
// role matches exactly.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// StoreFilter narrows the store listing. All fields match as substrings.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAddress  = "address"
	FieldRole     = "role"
	FieldOwnerID  = "owner_id"
)
