// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package sec

// Identity is the resolved acting user for a request.
//
// The access-control gate builds it by re-loading the user row referenced by
// the token's subject, so Role reflects the database, not the signed claim.
// Handlers receive it through the request context.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
