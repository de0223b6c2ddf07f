// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/ctxutil"
	requestutil "github.com/nmtri/storeratings/internal/platform/request"
	"github.com/nmtri/storeratings/internal/platform/sec"
)

func authenticatedRequest(identity *sec.Identity) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
}

/*
TestRequiredIdentity verifies the resolved acting user round-trips through
the request context, and that an anonymous request answers 401.
*/
func TestRequiredIdentity(t *testing.T) {
	identity := &sec.Identity{ID: "user-1", Email: "shopper@example.com", Role: sec.RoleNormal}

	resolved, err := requestutil.RequiredIdentity(authenticatedRequest(identity))
	require.NoError(t, err)
	assert.Equal(t, "user-1", resolved.ID)
	assert.Equal(t, sec.RoleNormal, resolved.Role)

	_, err = requestutil.RequiredIdentity(httptest.NewRequest(http.MethodGet, "/", nil))
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}

/*
TestRequiredUserID verifies the ID shortcut used by handlers that never
need the rest of the identity.
*/
func TestRequiredUserID(t *testing.T) {
	identity := &sec.Identity{ID: "user-1", Role: sec.RoleNormal}

	userID, err := requestutil.RequiredUserID(authenticatedRequest(identity))
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = requestutil.RequiredUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
