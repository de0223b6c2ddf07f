// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

/*
Package admin (Postgres) implements the storage layer for the administration surface.

# Schema Table Mapping
  - users: Master identity and profile data.
  - stores: Directory of rateable stores.
  - ratings: One row per (user, store) pair.
*/
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	store "github.com/nmtri/storeratings/internal/directory/store"
	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/database/schema"
	"github.com/nmtri/storeratings/internal/rating"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for the admin surface.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
CountAll returns platform totals in a single round trip.

Parameters:
  - context: context.Context

Returns:
  - *DashboardCounts: Users, stores, and ratings totals
  - error: Execution errors
*/
func (repository *PostgresRepository) CountAll(context context.Context) (*DashboardCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s)`,
		schema.User.Table, schema.Store.Table, schema.Rating.Table,
	)

	counts := &DashboardCounts{}
	err := repository.pool.QueryRow(context, query).Scan(
		&counts.TotalUsers, &counts.TotalStores, &counts.TotalRatings,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_count_all_failed: %w", err)
	}

	return counts, nil
}

/*
ListUsers returns directory users matching the filter.

Description: Text filters match as case-insensitive substrings; a role
filter matches exactly. Password hashes ride along in the entity but are
stripped by its JSON contract.

Parameters:
  - context: context.Context
  - filter: UserFilter

Returns:
  - []*auth.User: Matching accounts, name ascending
  - error: Execution errors
*/
func (repository *PostgresRepository) ListUsers(context context.Context, filter UserFilter) ([]*auth.User, error) {
	conditions := make([]string, 0, 4)
	arguments := make([]any, 0, 4)

	if filter.Name != "" {
		arguments = append(arguments, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.User.Name, len(arguments)))
	}
	if filter.Email != "" {
		arguments = append(arguments, "%"+filter.Email+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.User.Email, len(arguments)))
	}
	if filter.Address != "" {
		arguments = append(arguments, "%"+filter.Address+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.User.Address, len(arguments)))
	}
	if filter.Role != "" {
		arguments = append(arguments, filter.Role)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.User.Role, len(arguments)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		%s
		ORDER BY %s ASC`,
		schema.User.ID, schema.User.Name, schema.User.Email, schema.User.PasswordHash,
		schema.User.Address, schema.User.Role, schema.User.CreatedAt, schema.User.UpdatedAt,
		schema.User.Table,
		whereClause,
		schema.User.Name,
	)

	rows, err := repository.pool.Query(context, query, arguments...)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_list_users_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Address, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_user_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

/*
OwnerAverage aggregates ratings across every store owned by the user.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *float64: Aggregate, nil when unrated
  - error: Execution errors
*/
func (repository *PostgresRepository) OwnerAverage(context context.Context, ownerID string) (*float64, error) {
	query := fmt.Sprintf(`
		SELECT ROUND(AVG(r.%s)::numeric, 2)::float8
		FROM %s r
		JOIN %s s ON s.%s = r.%s
		WHERE s.%s = $1`,
		schema.Rating.Rating,
		schema.Rating.Table,
		schema.Store.Table, schema.Store.ID, schema.Rating.StoreID,
		schema.Store.OwnerID,
	)

	var average *float64
	if err := repository.pool.QueryRow(context, query, ownerID).Scan(&average); err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_owner_average_failed: %w", err)
	}

	return average, nil
}

/*
CreateStore persists a new store row.

Description: An empty OwnerID is stored as NULL so unassigned stores do not
trip the foreign key on users.

Parameters:
  - context: context.Context
  - entry: *store.Store

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) CreateStore(context context.Context, entry *store.Store) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		schema.Store.Table,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address,
		schema.Store.OwnerID, schema.Store.CreatedAt, schema.Store.UpdatedAt,
	)

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	var owner any
	if entry.OwnerID != "" {
		owner = entry.OwnerID
	}

	_, err := repository.pool.Exec(context, query,
		entry.ID, entry.Name, entry.Email, entry.Address, owner, now,
	)
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_create_store_failed: %w", err)
	}

	return nil
}

/*
ListStores returns directory stores matching the filter with live averages.

Parameters:
  - context: context.Context
  - filter: StoreFilter

Returns:
  - []*StoreRow: Matching stores, name ascending
  - error: Execution errors
*/
func (repository *PostgresRepository) ListStores(context context.Context, filter StoreFilter) ([]*StoreRow, error) {
	conditions := make([]string, 0, 3)
	arguments := make([]any, 0, 3)

	if filter.Name != "" {
		arguments = append(arguments, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("s.%s ILIKE $%d", schema.Store.Name, len(arguments)))
	}
	if filter.Email != "" {
		arguments = append(arguments, "%"+filter.Email+"%")
		conditions = append(conditions, fmt.Sprintf("s.%s ILIKE $%d", schema.Store.Email, len(arguments)))
	}
	if filter.Address != "" {
		arguments = append(arguments, "%"+filter.Address+"%")
		conditions = append(conditions, fmt.Sprintf("s.%s ILIKE $%d", schema.Store.Address, len(arguments)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, COALESCE(s.%s::text, ''),
		       ROUND(AVG(r.%s)::numeric, 2)::float8,
		       s.%s, s.%s
		FROM %s s
		LEFT JOIN %s r ON r.%s = s.%s
		%s
		GROUP BY s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s
		ORDER BY s.%s ASC`,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address, schema.Store.OwnerID,
		schema.Rating.Rating,
		schema.Store.CreatedAt, schema.Store.UpdatedAt,
		schema.Store.Table,
		schema.Rating.Table, schema.Rating.StoreID, schema.Store.ID,
		whereClause,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address,
		schema.Store.OwnerID, schema.Store.CreatedAt, schema.Store.UpdatedAt,
		schema.Store.Name,
	)

	rows, err := repository.pool.Query(context, query, arguments...)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_list_stores_failed: %w", err)
	}
	defer rows.Close()

	stores := make([]*StoreRow, 0)
	for rows.Next() {
		row := &StoreRow{}
		err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.Address, &row.OwnerID,
			&row.AverageRating, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_store_failed: %w", err)
		}
		stores = append(stores, row)
	}

	return stores, rows.Err()
}

/*
GetStore returns one store with its live average.

Parameters:
  - context: context.Context
  - storeID: string

Returns:
  - *StoreRow: Hydrated store
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) GetStore(context context.Context, storeID string) (*StoreRow, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, COALESCE(s.%s::text, ''),
		       ROUND(AVG(r.%s)::numeric, 2)::float8,
		       s.%s, s.%s
		FROM %s s
		LEFT JOIN %s r ON r.%s = s.%s
		WHERE s.%s = $1
		GROUP BY s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s`,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address, schema.Store.OwnerID,
		schema.Rating.Rating,
		schema.Store.CreatedAt, schema.Store.UpdatedAt,
		schema.Store.Table,
		schema.Rating.Table, schema.Rating.StoreID, schema.Store.ID,
		schema.Store.ID,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address,
		schema.Store.OwnerID, schema.Store.CreatedAt, schema.Store.UpdatedAt,
	)

	row := &StoreRow{}
	err := repository.pool.QueryRow(context, query, storeID).Scan(
		&row.ID, &row.Name, &row.Email, &row.Address, &row.OwnerID,
		&row.AverageRating, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Store")
		}
		return nil, fmt.Errorf("postgres_admin_repo_get_store_failed: %w", err)
	}

	return row, nil
}

/*
ListStoreRatings returns every rating submitted for the store, joined with
its author, newest first.

Parameters:
  - context: context.Context
  - storeID: string

Returns:
  - []*rating.StoreRating: Ratings with author name and email
  - error: Execution errors
*/
func (repository *PostgresRepository) ListStoreRatings(context context.Context, storeID string) ([]*rating.StoreRating, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, u.%s, u.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC`,
		schema.Rating.UserID, schema.User.Name, schema.User.Email, schema.Rating.Rating, schema.Rating.UpdatedAt,
		schema.Rating.Table,
		schema.User.Table, schema.User.ID, schema.Rating.UserID,
		schema.Rating.StoreID,
		schema.Rating.UpdatedAt,
	)

	rows, err := repository.pool.Query(context, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_list_store_ratings_failed: %w", err)
	}
	defer rows.Close()

	ratings := make([]*rating.StoreRating, 0)
	for rows.Next() {
		entry := &rating.StoreRating{}
		err := rows.Scan(&entry.UserID, &entry.UserName, &entry.UserEmail, &entry.Rating, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_store_rating_failed: %w", err)
		}
		ratings = append(ratings, entry)
	}

	return ratings, rows.Err()
}
