// Package stub provides an in-memory building repository with fixed data.
package stub

import (
	"context"

	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"github.com/louisbranch/skyline/internal/services/buildings/storage"
)

// FixtureNames are the building names returned by Fixture, in order.
var FixtureNames = []string{"Empire State Building", "Test Building"}

// Repository hands back a fixed building list.
type Repository struct {
	Buildings []domain.Building
	// Err, when set, makes every fetch fail with it.
	Err error
	// Calls counts FetchAll invocations.
	Calls int
}

// New returns a repository holding buildings with the given names.
func New(names ...string) *Repository {
	buildings := make([]domain.Building, 0, len(names))
	for _, name := range names {
		buildings = append(buildings, domain.Building{Name: name})
	}
	return &Repository{Buildings: buildings}
}

// Fixture returns the default two-building repository.
func Fixture() *Repository {
	return New(FixtureNames...)
}

// FetchAll implements storage.Repository.
func (r *Repository) FetchAll(ctx context.Context, onComplete storage.FetchFunc) {
	r.Calls++
	if err := ctx.Err(); err != nil {
		onComplete(nil, err)
		return
	}
	if r.Err != nil {
		onComplete(nil, r.Err)
		return
	}
	buildings := make([]domain.Building, len(r.Buildings))
	copy(buildings, r.Buildings)
	onComplete(buildings, nil)
}

var _ storage.Repository = (*Repository)(nil)
