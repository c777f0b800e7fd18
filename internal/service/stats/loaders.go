package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// loaders batch the display lookups of one report call. They cache within
// that call only and are discarded afterwards.
type loaders struct {
	readers *dataloader.Loader[uuid.UUID, domain.Reader]
	books   *dataloader.Loader[uuid.UUID, domain.Book]
}

const (
	defaultMaxBatch = 100
	defaultWait     = 2 * time.Millisecond
)

func (s *Service) newLoaders() *loaders {
	wait, capacity := s.cfg.LoaderWait, s.cfg.LoaderBatchCapacity
	if wait <= 0 {
		wait = defaultWait
	}
	if capacity <= 0 {
		capacity = defaultMaxBatch
	}
	return &loaders{
		readers: newLoader(wait, capacity, newReadersBatchFn(s.readers)),
		books:   newLoader(wait, capacity, newBooksBatchFn(s.books)),
	}
}

// newLoader creates a dataloader.Loader with the given batch parameters.
func newLoader[V any](wait time.Duration, capacity int, batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](capacity),
	)
}

func newReadersBatchFn(repo readerRepo) dataloader.BatchFunc[uuid.UUID, domain.Reader] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.Reader] {
		readers, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.Reader](len(keys), err)
		}

		byID := make(map[uuid.UUID]domain.Reader, len(readers))
		for _, r := range readers {
			byID[r.ID] = r
		}
		return mapResults(keys, byID)
	}
}

func newBooksBatchFn(repo bookRepo) dataloader.BatchFunc[uuid.UUID, domain.Book] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.Book] {
		books, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.Book](len(keys), err)
		}

		byID := make(map[uuid.UUID]domain.Book, len(books))
		for _, b := range books {
			byID[b.ID] = b
		}
		return mapResults(keys, byID)
	}
}

// errorResults returns n results all carrying err.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps fetched rows back to key order. Missing keys yield the zero
// value rather than an error.
func mapResults[V any](keys []uuid.UUID, byID map[uuid.UUID]V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[V]{Data: byID[key]}
	}
	return results
}
