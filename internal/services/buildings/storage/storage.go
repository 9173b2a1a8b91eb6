// Package storage defines the repository contract for building records.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/skyline/internal/services/buildings/domain"
)

// ErrAlreadyExists indicates a building with the same name already exists.
var ErrAlreadyExists = errors.New("record already exists")

// FetchFunc receives the result of a repository fetch.
type FetchFunc func(buildings []domain.Building, err error)

// Repository supplies the full building set on request.
//
// FetchAll invokes onComplete exactly once, before returning. On success the
// slice is non-nil and in insertion order; on failure it is nil and err is set.
type Repository interface {
	FetchAll(ctx context.Context, onComplete FetchFunc)
}
