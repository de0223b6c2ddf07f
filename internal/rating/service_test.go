// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package rating_test

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/storeratings/internal/platform/apperr"
	"github.com/nmtri/storeratings/internal/platform/dberr"
	"github.com/nmtri/storeratings/internal/rating"
)

// # Test Fixtures

// memoryRepository mimics the database contract, including the atomic
// overwrite semantics of the unique (user, store) index.
type memoryRepository struct {
	mu      sync.Mutex
	stores  map[string]*rating.RatedStore
	ratings map[string]*rating.Rating // key: userID + "/" + storeID
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		stores:  map[string]*rating.RatedStore{},
		ratings: map[string]*rating.Rating{},
	}
}

func (r *memoryRepository) addStore(id, name, ownerID string) {
	r.stores[id] = &rating.RatedStore{ID: id, Name: name, OwnerID: ownerID}
}

func (r *memoryRepository) Upsert(_ context.Context, submitted *rating.Rating) (*rating.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := submitted.UserID + "/" + submitted.StoreID
	now := time.Now()

	existing, ok := r.ratings[key]
	if !ok {
		existing = &rating.Rating{
			ID:        fmt.Sprintf("rating-%d", len(r.ratings)+1),
			UserID:    submitted.UserID,
			StoreID:   submitted.StoreID,
			CreatedAt: now,
		}
		r.ratings[key] = existing
	}
	existing.Rating = submitted.Rating
	existing.UpdatedAt = now

	copied := *existing
	return &copied, nil
}

func (r *memoryRepository) FindStore(_ context.Context, storeID string) (*rating.RatedStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[storeID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return store, nil
}

func (r *memoryRepository) ListStores(_ context.Context, _ rating.StoreFilter, _ string) ([]*rating.StoreSummary, error) {
	return nil, nil
}

func (r *memoryRepository) ListForStore(_ context.Context, storeID string) ([]*rating.StoreRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*rating.StoreRating, 0)
	for _, row := range r.ratings {
		if row.StoreID == storeID {
			entries = append(entries, &rating.StoreRating{
				UserID:    row.UserID,
				Rating:    row.Rating,
				UpdatedAt: row.UpdatedAt,
			})
		}
	}
	return entries, nil
}

func (r *memoryRepository) AverageForStore(_ context.Context, storeID string) (*float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum, count := 0, 0
	for _, row := range r.ratings {
		if row.StoreID == storeID {
			sum += row.Rating
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	average := math.Round(float64(sum)/float64(count)*100) / 100
	return &average, nil
}

func newTestService() (*rating.Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return rating.NewService(repo, logger), repo
}

// # Submission

/*
TestSubmit_OutOfRange verifies bounds checking, including zero from an
absent JSON field, without touching storage.
*/
func TestSubmit_OutOfRange(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	for _, value := range []int{0, -1, 6, 100} {
		_, err := service.Submit(context.Background(), "user-1", "store-1", value)

		var appErr *apperr.AppError
		require.ErrorAs(t, err, &appErr, "value %d", value)
		assert.Equal(t, 400, appErr.HTTPStatus)
	}
	assert.Empty(t, repo.ratings)
}

/*
TestSubmit_UnknownStore verifies that rating a missing store is a 404,
not a silent insert against a dangling ID.
*/
func TestSubmit_UnknownStore(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Submit(context.Background(), "user-1", "store-missing", 4)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
	assert.Empty(t, repo.ratings)
}

/*
TestSubmit_OverwritesPrevious verifies last-write-wins: a re-submission
keeps one row and the newest value.
*/
func TestSubmit_OverwritesPrevious(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	first, err := service.Submit(context.Background(), "user-1", "store-1", 2)
	require.NoError(t, err)

	second, err := service.Submit(context.Background(), "user-1", "store-1", 5)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Len(t, repo.ratings, 1)
}

/*
TestSubmit_ConcurrentSameUser verifies that racing submissions from one
user collapse to a single row holding one of the submitted values.
*/
func TestSubmit_ConcurrentSameUser(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	values := []int{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}
	var wg sync.WaitGroup
	for _, value := range values {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_, err := service.Submit(context.Background(), "user-1", "store-1", v)
			assert.NoError(t, err)
		}(value)
	}
	wg.Wait()

	require.Len(t, repo.ratings, 1)
	final := repo.ratings["user-1/store-1"]
	require.NotNil(t, final)
	assert.Contains(t, values, final.Rating)
}

/*
TestSubmit_DistinctUsersAccumulate verifies that different users rating
the same store each keep their own row and all feed the average.
*/
func TestSubmit_DistinctUsersAccumulate(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	for index, value := range []int{1, 3, 5} {
		_, err := service.Submit(context.Background(), fmt.Sprintf("user-%d", index), "store-1", value)
		require.NoError(t, err)
	}

	assert.Len(t, repo.ratings, 3)
	average, err := repo.AverageForStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.NotNil(t, average)
	assert.InDelta(t, 3.0, *average, 0.001)
}

// # Owner Report

/*
TestStoreRatings_OwnershipEnforced verifies that owning the right role is
not enough: the requester must own this store.
*/
func TestStoreRatings_OwnershipEnforced(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	_, err := service.StoreRatings(context.Background(), "owner-2", "store-1")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)
}

/*
TestStoreRatings_UnknownStore verifies a 404 rather than a 403 for a store
that does not exist at all.
*/
func TestStoreRatings_UnknownStore(t *testing.T) {
	service, _ := newTestService()

	_, err := service.StoreRatings(context.Background(), "owner-1", "store-missing")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

/*
TestStoreRatings_Report verifies the owner report: live average plus the
individual rater rows.
*/
func TestStoreRatings_Report(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	_, err := service.Submit(context.Background(), "user-1", "store-1", 4)
	require.NoError(t, err)
	_, err = service.Submit(context.Background(), "user-2", "store-1", 5)
	require.NoError(t, err)

	report, err := service.StoreRatings(context.Background(), "owner-1", "store-1")
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", report.StoreName)
	require.NotNil(t, report.AverageRating)
	assert.InDelta(t, 4.5, *report.AverageRating, 0.001)
	assert.Len(t, report.Ratings, 2)
}

/*
TestStoreRatings_NoRatingsYet verifies that an unrated store reports a nil
average, never a zero.
*/
func TestStoreRatings_NoRatingsYet(t *testing.T) {
	service, repo := newTestService()
	repo.addStore("store-1", "Corner Grocery", "owner-1")

	report, err := service.StoreRatings(context.Background(), "owner-1", "store-1")
	require.NoError(t, err)
	assert.Nil(t, report.AverageRating)
	assert.Empty(t, report.Ratings)
}
