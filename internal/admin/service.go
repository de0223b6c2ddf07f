// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"

	store "github.com/nmtri/storeratings/internal/directory/store"
	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/sec"
	"github.com/nmtri/storeratings/internal/users/auth"
	"github.com/nmtri/storeratings/pkg/uuid"
)

// # Service

// Service implements administration use cases. It reuses the identity
// layer's user repository for account rows and adds directory-wide
// queries through its own [Repository].
type Service struct {
	users  auth.UserRepository
	repo   Repository
	hasher *sec.Hasher
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users auth.UserRepository, repo Repository, hasher *sec.Hasher, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Dashboard returns the platform totals.
func (service *Service) Dashboard(context context.Context) (*DashboardCounts, error) {
	return service.repo.CountAll(context)
}

// # User Administration

// CreateUserInput holds the data for privileged account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

/*
CreateUser enrolls an account with an explicit role.

Description: The only path that mints admin and store_owner accounts.
The role must be a member of the role enum; unknown strings are rejected
before touching storage.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: Created entity
  - err: Validation, Conflict, or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {
	role := sec.Role(input.Role)
	if !role.IsValid() {
		return nil, apperr.ValidationError("Role must be one of: admin, normal, store_owner")
	}

	// Same duplicate-email contract as self-signup.
	_, err := service.users.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Address:      input.Address,
		Role:         role,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, fmt.Errorf("admin_service_create_user_failed: %w", err)
	}

	service.logger.Info("admin created user",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// ListUsers returns directory users matching the filter.
func (service *Service) ListUsers(context context.Context, filter UserFilter) ([]*auth.User, error) {
	if filter.Role != "" && !sec.Role(filter.Role).IsValid() {
		return nil, apperr.ValidationError("Role must be one of: admin, normal, store_owner")
	}
	return service.repo.ListUsers(context, filter)
}

/*
GetUser returns one account, enriched for store owners.

Description: A store_owner detail carries the average rating across their
stores; other roles carry no aggregate at all.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *UserDetail: Account plus owner aggregate
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetUser(context context.Context, userID string) (*UserDetail, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{User: user}
	if user.Role == sec.RoleStoreOwner {
		average, err := service.repo.OwnerAverage(context, userID)
		if err != nil {
			return nil, err
		}
		detail.RatedAverage = average
	}

	return detail, nil
}

// # Store Administration

// CreateStoreInput holds the data for registering a store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

/*
CreateStore registers a new store in the directory.

Description: An owner, when given, must resolve to an existing account
holding exactly the store_owner role. The check reads the live row, so a
freshly demoted owner cannot receive new stores.

Parameters:
  - context: context.Context
  - input: CreateStoreInput

Returns:
  - *store.Store: Created entity
  - err: Validation or storage errors
*/
func (service *Service) CreateStore(context context.Context, input CreateStoreInput) (*store.Store, error) {
	if input.OwnerID != "" {
		owner, err := service.users.FindByID(context, input.OwnerID)
		if err != nil {
			return nil, apperr.ValidationError("Owner does not exist")
		}
		if owner.Role != sec.RoleStoreOwner {
			return nil, apperr.ValidationError("Owner must hold the store_owner role")
		}
	}

	entry := &store.Store{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	}

	if err := service.repo.CreateStore(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("admin created store",
		slog.String("store_id", entry.ID),
		slog.String("owner_id", entry.OwnerID),
	)

	return entry, nil
}

// ListStores returns directory stores matching the filter.
func (service *Service) ListStores(context context.Context, filter StoreFilter) ([]*StoreRow, error) {
	return service.repo.ListStores(context, filter)
}

/*
GetStore returns one store with its live average and every rating behind it.

Parameters:
  - context: context.Context
  - storeID: string

Returns:
  - *StoreDetail: Store row plus its individual ratings
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetStore(context context.Context, storeID string) (*StoreDetail, error) {
	row, err := service.repo.GetStore(context, storeID)
	if err != nil {
		return nil, err
	}

	ratings, err := service.repo.ListStoreRatings(context, storeID)
	if err != nil {
		return nil, err
	}

	return &StoreDetail{StoreRow: *row, Ratings: ratings}, nil
}
