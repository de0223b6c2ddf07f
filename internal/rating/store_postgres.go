// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package rating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtri/storeratings/internal/platform/database/schema"
	"github.com/nmtri/storeratings/internal/platform/dberr"
	"github.com/nmtri/storeratings/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert writes the caller's rating in one atomic statement. The unique index
// on (userid, storeid) turns a re-submission into an overwrite, so two
// concurrent submissions from the same user can never produce two rows.
func (repository *PostgresRepository) Upsert(context context.Context, rating *Rating) (*Rating, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (%s, %s)
		DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
		RETURNING %s, %s, %s, %s, %s, %s`,
		schema.Rating.Table,
		schema.Rating.ID, schema.Rating.UserID, schema.Rating.StoreID, schema.Rating.Rating, schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
		schema.Rating.UserID, schema.Rating.StoreID,
		schema.Rating.Rating, schema.Rating.Rating, schema.Rating.UpdatedAt, schema.Rating.UpdatedAt,
		schema.Rating.ID, schema.Rating.UserID, schema.Rating.StoreID, schema.Rating.Rating, schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
	)

	persisted := &Rating{}
	err := repository.db.QueryRow(context, query,
		uuid.New(), rating.UserID, rating.StoreID, rating.Rating, time.Now(),
	).Scan(
		&persisted.ID, &persisted.UserID, &persisted.StoreID,
		&persisted.Rating, &persisted.CreatedAt, &persisted.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_rating")
	}

	return persisted, nil
}

func (repository *PostgresRepository) FindStore(context context.Context, storeID string) (*RatedStore, error) {
	query := fmt.Sprintf(`SELECT %s, %s, COALESCE(%s::text, '') FROM %s WHERE %s = $1`,
		schema.Store.ID, schema.Store.Name, schema.Store.OwnerID,
		schema.Store.Table, schema.Store.ID)

	store := &RatedStore{}
	err := repository.db.QueryRow(context, query, storeID).Scan(&store.ID, &store.Name, &store.OwnerID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_rated_store")
	}

	return store, nil
}

// ListStores joins each store with its live average and the requesting
// user's own rating. The average expression here and in AverageForStore is
// the only aggregation path in the system.
func (repository *PostgresRepository) ListStores(context context.Context, filter StoreFilter, userID string) ([]*StoreSummary, error) {
	conditions := make([]string, 0, 2)
	arguments := []any{userID}

	if filter.Name != "" {
		arguments = append(arguments, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("s.%s ILIKE $%d", schema.Store.Name, len(arguments)))
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
		SELECT s.%s, s.%s, s.%s,
		       ROUND(AVG(r.%s)::numeric, 2)::float8,
		       my.%s
		FROM %s s
		LEFT JOIN %s r ON r.%s = s.%s
		LEFT JOIN %s my ON my.%s = s.%s AND my.%s = $1
		%s
		GROUP BY s.%s, s.%s, s.%s, my.%s
		ORDER BY s.%s ASC`,
		schema.Store.ID, schema.Store.Name, schema.Store.Address,
		schema.Rating.Rating,
		schema.Rating.Rating,
		schema.Store.Table,
		schema.Rating.Table, schema.Rating.StoreID, schema.Store.ID,
		schema.Rating.Table, schema.Rating.StoreID, schema.Store.ID, schema.Rating.UserID,
		whereClause,
		schema.Store.ID, schema.Store.Name, schema.Store.Address, schema.Rating.Rating,
		schema.Store.Name,
	)

	rows, err := repository.db.Query(context, query, arguments...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_rated_stores")
	}
	defer rows.Close()

	stores := make([]*StoreSummary, 0)
	for rows.Next() {
		summary := &StoreSummary{}
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Address, &summary.OverallRating, &summary.UserRating); err != nil {
			return nil, dberr.Wrap(err, "scan_rated_store")
		}
		stores = append(stores, summary)
	}

	return stores, rows.Err()
}

func (repository *PostgresRepository) ListForStore(context context.Context, storeID string) ([]*StoreRating, error) {
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

	rows, err := repository.db.Query(context, query, storeID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_store_ratings")
	}
	defer rows.Close()

	ratings := make([]*StoreRating, 0)
	for rows.Next() {
		entry := &StoreRating{}
		if err := rows.Scan(&entry.UserID, &entry.UserName, &entry.UserEmail, &entry.Rating, &entry.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_store_rating")
		}
		ratings = append(ratings, entry)
	}

	return ratings, rows.Err()
}

// AverageForStore returns nil, not zero, for an unrated store. A zero would
// read as a published one-star-adjacent score.
func (repository *PostgresRepository) AverageForStore(context context.Context, storeID string) (*float64, error) {
	query := fmt.Sprintf(`SELECT ROUND(AVG(%s)::numeric, 2)::float8 FROM %s WHERE %s = $1`,
		schema.Rating.Rating, schema.Rating.Table, schema.Rating.StoreID)

	var average *float64
	if err := repository.db.QueryRow(context, query, storeID).Scan(&average); err != nil {
		return nil, dberr.Wrap(err, "average_for_store")
	}

	return average, nil
}
