// Package storagetest holds reusable checks for storage.Repository
// implementations.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"github.com/louisbranch/skyline/internal/services/buildings/storage"
)

// RunRepositoryContract fetches from repo and checks the completion contract:
// one synchronous callback, no error, a non-nil result with wantNames in order.
func RunRepositoryContract(t *testing.T, repo storage.Repository, wantNames []string) {
	t.Helper()

	calls := 0
	var got []domain.Building
	var gotErr error
	repo.FetchAll(context.Background(), func(buildings []domain.Building, err error) {
		calls++
		got = buildings
		gotErr = err
	})

	if calls != 1 {
		t.Fatalf("onComplete calls = %d, want 1", calls)
	}
	if gotErr != nil {
		t.Fatalf("fetch all: %v", gotErr)
	}
	if got == nil {
		t.Fatal("expected non-nil buildings")
	}
	if diff := cmp.Diff(wantNames, domain.ViewState{Buildings: got}.Names()); diff != "" {
		t.Fatalf("building names mismatch (-want +got):\n%s", diff)
	}
}

// RunCancelledContract checks that a cancelled context still completes exactly
// once, with an error and no buildings.
func RunCancelledContract(t *testing.T, repo storage.Repository) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	repo.FetchAll(ctx, func(buildings []domain.Building, err error) {
		calls++
		if err == nil {
			t.Fatal("expected cancellation error")
		}
		if buildings != nil {
			t.Fatalf("buildings = %v, want nil", buildings)
		}
	})
	if calls != 1 {
		t.Fatalf("onComplete calls = %d, want 1", calls)
	}
}
