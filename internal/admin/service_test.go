// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package admin_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/storeratings/internal/admin"
	store "github.com/nmtri/storeratings/internal/directory/store"
	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/sec"
	"github.com/nmtri/storeratings/internal/rating"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// # Test Fixtures

type memoryUsers struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}, byEmail: map[string]*auth.User{}}
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUsers) Create(_ context.Context, user *auth.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

type memoryDirectory struct {
	counts        admin.DashboardCounts
	ownerAverages map[string]*float64
	created       []*store.Store
	users         []*auth.User
	stores        []*admin.StoreRow
	storeRatings  map[string][]*rating.StoreRating

	ownerAverageCalls int
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		ownerAverages: map[string]*float64{},
		storeRatings:  map[string][]*rating.StoreRating{},
	}
}

func (r *memoryDirectory) CountAll(_ context.Context) (*admin.DashboardCounts, error) {
	counts := r.counts
	return &counts, nil
}

func (r *memoryDirectory) ListUsers(_ context.Context, filter admin.UserFilter) ([]*auth.User, error) {
	matched := make([]*auth.User, 0)
	for _, user := range r.users {
		if filter.Name != "" && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		matched = append(matched, user)
	}
	return matched, nil
}

func (r *memoryDirectory) OwnerAverage(_ context.Context, ownerID string) (*float64, error) {
	r.ownerAverageCalls++
	return r.ownerAverages[ownerID], nil
}

func (r *memoryDirectory) CreateStore(_ context.Context, entry *store.Store) error {
	r.created = append(r.created, entry)
	return nil
}

func (r *memoryDirectory) ListStores(_ context.Context, _ admin.StoreFilter) ([]*admin.StoreRow, error) {
	return r.stores, nil
}

func (r *memoryDirectory) GetStore(_ context.Context, storeID string) (*admin.StoreRow, error) {
	for _, row := range r.stores {
		if row.ID == storeID {
			return row, nil
		}
	}
	return nil, apperr.NotFound("Store")
}

func (r *memoryDirectory) ListStoreRatings(_ context.Context, storeID string) ([]*rating.StoreRating, error) {
	ratings, ok := r.storeRatings[storeID]
	if !ok {
		return []*rating.StoreRating{}, nil
	}
	return ratings, nil
}

func newTestService() (*admin.Service, *memoryUsers, *memoryDirectory) {
	users := newMemoryUsers()
	directory := newMemoryDirectory()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	service := admin.NewService(users, directory, sec.NewHasher(4), logger)
	return service, users, directory
}

func seedUser(users *memoryUsers, id, email string, role sec.Role) *auth.User {
	user := &auth.User{ID: id, Name: "Seeded Directory Account", Email: email, Role: role}
	users.byID[id] = user
	users.byEmail[email] = user
	return user
}

// # User Administration

/*
TestCreateUser_UnknownRole verifies that an unlisted role string is
rejected before any account is created.
*/
func TestCreateUser_UnknownRole(t *testing.T) {
	service, users, _ := newTestService()

	_, err := service.CreateUser(context.Background(), admin.CreateUserInput{
		Name:     "Administrator Created Person",
		Email:    "new@example.com",
		Password: "Str0ngPass!",
		Role:     "superadmin",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Empty(t, users.byEmail)
}

/*
TestCreateUser_ElevatedRole verifies that the admin path can mint roles
self-signup never does, and hashes the password on the way in.
*/
func TestCreateUser_ElevatedRole(t *testing.T) {
	service, users, _ := newTestService()

	user, err := service.CreateUser(context.Background(), admin.CreateUserInput{
		Name:     "Administrator Created Person",
		Email:    "owner@example.com",
		Password: "Str0ngPass!",
		Role:     "store_owner",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleStoreOwner, user.Role)
	stored := users.byEmail["owner@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Str0ngPass!", stored.PasswordHash)
}

/*
TestCreateUser_DuplicateEmail verifies the same Conflict contract as
self-signup.
*/
func TestCreateUser_DuplicateEmail(t *testing.T) {
	service, users, _ := newTestService()
	seedUser(users, "user-1", "taken@example.com", sec.RoleNormal)

	_, err := service.CreateUser(context.Background(), admin.CreateUserInput{
		Name:     "Administrator Created Person",
		Email:    "taken@example.com",
		Password: "Str0ngPass!",
		Role:     "normal",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

/*
TestGetUser_OwnerCarriesAverage verifies that only store_owner details are
enriched with the cross-store average.
*/
func TestGetUser_OwnerCarriesAverage(t *testing.T) {
	service, users, directory := newTestService()
	seedUser(users, "owner-1", "owner@example.com", sec.RoleStoreOwner)
	seedUser(users, "user-1", "user@example.com", sec.RoleNormal)

	average := 4.25
	directory.ownerAverages["owner-1"] = &average

	ownerDetail, err := service.GetUser(context.Background(), "owner-1")
	require.NoError(t, err)
	require.NotNil(t, ownerDetail.RatedAverage)
	assert.InDelta(t, 4.25, *ownerDetail.RatedAverage, 0.001)

	userDetail, err := service.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, userDetail.RatedAverage)
	// The aggregate query only ran for the owner.
	assert.Equal(t, 1, directory.ownerAverageCalls)
}

/*
TestListUsers_UnknownRoleFilter verifies that a bad role filter fails fast
instead of silently matching nothing.
*/
func TestListUsers_UnknownRoleFilter(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.ListUsers(context.Background(), admin.UserFilter{Role: "root"})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

// # Store Administration

/*
TestCreateStore_OwnerMustBeStoreOwner verifies the referential check on
the assigned owner's current role.
*/
func TestCreateStore_OwnerMustBeStoreOwner(t *testing.T) {
	service, users, directory := newTestService()
	seedUser(users, "user-1", "user@example.com", sec.RoleNormal)

	_, err := service.CreateStore(context.Background(), admin.CreateStoreInput{
		Name:    "Corner Grocery",
		Email:   "shop@example.com",
		Address: "12 Nguyen Hue Blvd",
		OwnerID: "user-1",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Empty(t, directory.created)
}

/*
TestCreateStore_MissingOwner verifies that a dangling owner reference is a
validation failure, not an internal error.
*/
func TestCreateStore_MissingOwner(t *testing.T) {
	service, _, directory := newTestService()

	_, err := service.CreateStore(context.Background(), admin.CreateStoreInput{
		Name:    "Corner Grocery",
		Email:   "shop@example.com",
		Address: "12 Nguyen Hue Blvd",
		OwnerID: "ghost",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Empty(t, directory.created)
}

/*
TestCreateStore_Unassigned verifies that a store can be registered with no
owner at all.
*/
func TestCreateStore_Unassigned(t *testing.T) {
	service, _, directory := newTestService()

	created, err := service.CreateStore(context.Background(), admin.CreateStoreInput{
		Name:    "Corner Grocery",
		Email:   "shop@example.com",
		Address: "12 Nguyen Hue Blvd",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.OwnerID)
	require.Len(t, directory.created, 1)
}

/*
TestCreateStore_ValidOwner verifies the happy path with a live store_owner.
*/
func TestCreateStore_ValidOwner(t *testing.T) {
	service, users, directory := newTestService()
	seedUser(users, "owner-1", "owner@example.com", sec.RoleStoreOwner)

	created, err := service.CreateStore(context.Background(), admin.CreateStoreInput{
		Name:    "Corner Grocery",
		Email:   "shop@example.com",
		Address: "12 Nguyen Hue Blvd",
		OwnerID: "owner-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", created.OwnerID)
	require.Len(t, directory.created, 1)
}

/*
TestGetStore_CarriesRatings verifies the single-store view embeds the
individual ratings behind its average, each with its author.
*/
func TestGetStore_CarriesRatings(t *testing.T) {
	service, _, directory := newTestService()

	average := 4.5
	directory.stores = []*admin.StoreRow{
		{ID: "store-1", Name: "Corner Grocery", AverageRating: &average},
	}
	directory.storeRatings["store-1"] = []*rating.StoreRating{
		{UserID: "user-1", UserName: "Frequent Shopper Number One", UserEmail: "one@example.com", Rating: 5},
		{UserID: "user-2", UserName: "Frequent Shopper Number Two", UserEmail: "two@example.com", Rating: 4},
	}

	detail, err := service.GetStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.5, *detail.AverageRating, 0.001)
	require.Len(t, detail.Ratings, 2)
	assert.Equal(t, "one@example.com", detail.Ratings[0].UserEmail)
	assert.Equal(t, 5, detail.Ratings[0].Rating)
}

/*
TestGetStore_UnratedEmptyList verifies an unrated store answers with a nil
average and an empty ratings list, never a null list or a zero score.
*/
func TestGetStore_UnratedEmptyList(t *testing.T) {
	service, _, directory := newTestService()
	directory.stores = []*admin.StoreRow{{ID: "store-1", Name: "Corner Grocery"}}

	detail, err := service.GetStore(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Nil(t, detail.AverageRating)
	require.NotNil(t, detail.Ratings)
	assert.Empty(t, detail.Ratings)
}

// # Dashboard

/*
TestDashboard_Passthrough verifies the totals surface unchanged.
*/
func TestDashboard_Passthrough(t *testing.T) {
	service, _, directory := newTestService()
	directory.counts = admin.DashboardCounts{TotalUsers: 7, TotalStores: 3, TotalRatings: 19}

	counts, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, counts.TotalUsers)
	assert.Equal(t, 3, counts.TotalStores)
	assert.Equal(t, 19, counts.TotalRatings)
}
