package repository

import "context"

// Filter is a field-equality filter. Matching a scalar against an array
// field follows document-store semantics (array containment).
type Filter map[string]any

type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	Upsert(ctx context.Context, collectionName string, filter Filter, entity T) (T, error)
	FindOne(ctx context.Context, collectionName string, filter Filter) (T, error)
	FindRecent(ctx context.Context, collectionName string, filter Filter, sortField string, limit int64) ([]T, error)
}
