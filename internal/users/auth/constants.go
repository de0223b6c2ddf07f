// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Long-lived (7 days) because the platform has no refresh mechanism;
	// every gated request re-validates the account against the database anyway.
	AccessTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// NameMinLen and NameMaxLen bound the user's full name.
	NameMinLen = 20
	NameMaxLen = 60

	// AddressMaxLen bounds the optional address field.
	AddressMaxLen = 400
)
