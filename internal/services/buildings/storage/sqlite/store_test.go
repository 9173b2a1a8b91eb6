package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"github.com/louisbranch/skyline/internal/services/buildings/storage"
	"github.com/louisbranch/skyline/internal/services/buildings/storage/storagetest"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestAllBuildingsRepositoryContract(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Seed(context.Background(), "Test Building"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	storagetest.RunRepositoryContract(t, store, []string{"Test Building"})
}

func TestEmptyStoreContract(t *testing.T) {
	t.Parallel()

	storagetest.RunRepositoryContract(t, openTempStore(t), []string{})
}

func TestCancelledContract(t *testing.T) {
	t.Parallel()

	storagetest.RunCancelledContract(t, openTempStore(t))
}

func TestFetchAllKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	names := []string{"Woolworth Building", "Chrysler Building", "Empire State Building"}
	if err := store.Seed(context.Background(), names...); err != nil {
		t.Fatalf("seed: %v", err)
	}
	storagetest.RunRepositoryContract(t, store, names)
}

func TestCreateBuildingReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := domain.Building{Name: "Flatiron Building"}
	if err := store.CreateBuilding(context.Background(), input); err != nil {
		t.Fatalf("create initial building: %v", err)
	}
	err := store.CreateBuilding(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
	if got := apperrors.CodeOf(err); got != apperrors.CodeBuildingExists {
		t.Fatalf("duplicate create code = %s, want %s", got, apperrors.CodeBuildingExists)
	}
}

func TestCreateBuildingRequiresName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.CreateBuilding(context.Background(), domain.Building{Name: "  "})
	if err == nil {
		t.Fatal("expected name required error")
	}
	if got := apperrors.CodeOf(err); got != apperrors.CodeBuildingNameEmpty {
		t.Fatalf("blank name code = %s, want %s", got, apperrors.CodeBuildingNameEmpty)
	}
}

func TestCreateBuildingStoresNameAsGiven(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, name := range []string{" Seagram Building ", "Seagram Building"} {
		if err := store.CreateBuilding(context.Background(), domain.Building{Name: name}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}
	storagetest.RunRepositoryContract(t, store, []string{" Seagram Building ", "Seagram Building"})
}

func TestSeedTrimsConfiguredNames(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Seed(context.Background(), " Test Building", "Test Building "); err != nil {
		t.Fatalf("seed: %v", err)
	}
	storagetest.RunRepositoryContract(t, store, []string{"Test Building"})
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "nested", "buildings.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat database file: %v", err)
	}
}

func TestOpenFailsWhenParentIsAFile(t *testing.T) {
	t.Parallel()

	parent := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(parent, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Open(filepath.Join(parent, "buildings.db")); err == nil {
		t.Fatal("expected open error")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for i := 0; i < 2; i++ {
		if err := store.Seed(context.Background(), "Empire State Building", "", "Test Building"); err != nil {
			t.Fatalf("seed pass %d: %v", i, err)
		}
	}
	storagetest.RunRepositoryContract(t, store, []string{"Empire State Building", "Test Building"})
}

func TestSchemaRejectsBlankName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.sqlDB.ExecContext(
		context.Background(),
		`INSERT INTO buildings (name, created_at) VALUES (?, ?)`,
		"   ",
		0,
	)
	if err == nil {
		t.Fatal("expected schema constraint error")
	}
	if isBuildingUniqueViolation(err) {
		t.Fatalf("check constraint error incorrectly classified as unique violation: %v", err)
	}
}

func TestReopenKeepsBuildings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "buildings.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Seed(context.Background(), "Test Building"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	storagetest.RunRepositoryContract(t, reopened, []string{"Test Building"})
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "buildings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
