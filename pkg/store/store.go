// Package store persists extracted page records. Every successfully
// extracted page is saved once, whatever happens to its summarisation.
package store

import (
	"context"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
)

// Store is a persistence sink for page records, keyed by the record's
// category and ID.
type Store interface {
	Save(ctx context.Context, rec domain.Record) error
	Close(ctx context.Context) error
}

// Discard is a Store that keeps nothing, for runs with saving turned
// off.
type Discard struct{}

// Save drops the record.
func (Discard) Save(ctx context.Context, rec domain.Record) error { return nil }

// Close does nothing.
func (Discard) Close(ctx context.Context) error { return nil }
