package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtri/storeratings/internal/platform/database/schema"
	"github.com/nmtri/storeratings/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*OwnedStore, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s,
		       ROUND(AVG(r.%s)::numeric, 2)::float8,
		       COUNT(r.%s)::int
		FROM %s s
		LEFT JOIN %s r ON r.%s = s.%s
		WHERE s.%s = $1
		GROUP BY s.%s, s.%s, s.%s, s.%s
		ORDER BY s.%s ASC`,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address,
		schema.Rating.Rating,
		schema.Rating.ID,
		schema.Store.Table,
		schema.Rating.Table, schema.Rating.StoreID, schema.Store.ID,
		schema.Store.OwnerID,
		schema.Store.ID, schema.Store.Name, schema.Store.Email, schema.Store.Address,
		schema.Store.Name,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_stores_by_owner")
	}
	defer rows.Close()

	stores := make([]*OwnedStore, 0)
	for rows.Next() {
		owned := &OwnedStore{}
		if err := rows.Scan(&owned.ID, &owned.Name, &owned.Email, &owned.Address, &owned.AverageRating, &owned.RatingCount); err != nil {
			return nil, dberr.Wrap(err, "scan_owned_store")
		}
		stores = append(stores, owned)
	}

	return stores, rows.Err()
}
