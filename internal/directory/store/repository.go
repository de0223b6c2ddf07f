package store

import "context"

type Repository interface {
	ListByOwner(context context.Context, ownerID string) ([]*OwnedStore, error)
}
