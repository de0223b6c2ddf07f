// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/constants"
	"github.com/nmtri/storeratings/internal/platform/ctxutil"
	"github.com/nmtri/storeratings/internal/platform/respond"
	"github.com/nmtri/storeratings/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec` token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityLoader resolves a user ID from verified token claims into a live
// user record.
type IdentityLoader interface {
	LoadIdentity(request *http.Request, userID string) (*sec.Identity, error)
}

// IdentityLoaderFunc adapts a plain function to the [IdentityLoader] interface.
type IdentityLoaderFunc func(request *http.Request, userID string) (*sec.Identity, error)

// LoadIdentity implements [IdentityLoader].
func (f IdentityLoaderFunc) LoadIdentity(request *http.Request, userID string) (*sec.Identity, error) {
	return f(request, userID)
}

// Authenticate extracts and verifies the JWT from the Authorization header,
// then re-loads the referenced user from storage.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Re-load the user by ID via [IdentityLoader] — the signed role claim is
//     never trusted on its own, so role changes and account deletions made
//     after token issuance are observed on the very next request. This trades
//     one storage read per request for freshness, which is acceptable at this
//     service's scale.
//  5. Inject the resolved [*sec.Identity] into the request context.
//
// Invalid and expired tokens both answer 401; the distinction is kept in the
// structured log for diagnostics.
func Authenticate(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
				respond.Error(writer, request, apperr.Unauthorized("Missing or invalid token"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "auth_token_expired")
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. User Resolution ────────────────────────────────────────────
			identity, err := loader.LoadIdentity(request, claims.UserID)
			if err != nil || identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid user"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if a resolved [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := GetIdentity(request)
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests unless the resolved user's role matches exactly.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// The three roles are peers, so this is an equality check against the role
// freshly loaded from storage — an admin does not pass a gate that requires
// a normal user, and vice versa.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := GetIdentity(request)

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if identity.Role != role {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetIdentity retrieves the resolved [*sec.Identity] from the request.
//
// # Returns
//   - The acting user if the request is authenticated.
//   - nil if the request is anonymous.
func GetIdentity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}
