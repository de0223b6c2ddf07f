// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The three roles are peers, not a hierarchy: an admin manages the directory,
// a normal user submits ratings, a store owner reads ratings on owned stores.
// Access checks therefore match exactly rather than comparing levels.
type Role string

const (
	// Manages the user and store directory
	RoleAdmin Role = "admin"

	// Default role for self-registered users; may submit ratings
	RoleNormal Role = "normal"

	// Owns stores and reads ratings submitted against them
	RoleStoreOwner Role = "store_owner"
)

// Roles lists every valid role, in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleNormal, RoleStoreOwner}
}

// IsValid reports whether the role is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleNormal, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
