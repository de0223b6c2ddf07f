// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens. Callers key every operation by the token's digest, never
// the plaintext token, so a leaked dump cannot be replayed.
type ResetTokenRepository interface {

	/*
		Set stores a reset token digest associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - tokenDigest: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenDigest string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token digest.

		Parameters:
		  - context: context.Context
		  - tokenDigest: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, tokenDigest string) (string, error)

	/*
		Delete removes a reset token digest after successful use.

		Parameters:
		  - context: context.Context
		  - tokenDigest: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, tokenDigest string) error
}
