package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/repository"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func testDataset() domain.Dataset {
	return domain.Dataset{
		{
			Name: "Kapoor",
			Members: []domain.Member{
				{Name: "Raj Kapoor", Profession: "Actor", Bio: "The showman", Connections: []string{"Father of Randhir Kapoor", "Son of Prithviraj Kapoor"}},
				{Name: "", Profession: "Actor", Connections: []string{}},
				{Name: "Randhir Kapoor", Profession: "Actor", Connections: []string{}},
			},
		},
		{Name: "Empty", Members: []domain.Member{}},
		{
			Name:    "Akhtar",
			Members: []domain.Member{{Name: "Javed Akhtar", Profession: "Poet", Connections: []string{"Married to Shabana Azmi"}}},
		},
	}
}

// ============================================================================
// Dataset Tests
// ============================================================================

func TestSaveAndLoadDataset(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		_, err := repo.LoadDataset(ctx)
		if !errors.Is(err, repository.ErrEmptyStore) {
			t.Fatalf("expected ErrEmptyStore, got %v", err)
		}
	})

	t.Run("round trip keeps order and malformed records", func(t *testing.T) {
		assertNoError(t, repo.SaveDataset(ctx, testDataset(), "data.json"))

		ds, err := repo.LoadDataset(ctx)
		assertNoError(t, err)
		assertEqual(t, testDataset(), ds)
	})

	t.Run("save replaces previous dataset", func(t *testing.T) {
		replacement := domain.Dataset{{Name: "Bachchan", Members: []domain.Member{{Name: "Amitabh Bachchan", Connections: []string{}}}}}
		assertNoError(t, repo.SaveDataset(ctx, replacement, "bachchan.yaml"))

		ds, err := repo.LoadDataset(ctx)
		assertNoError(t, err)
		assertEqual(t, replacement, ds)
	})

	t.Run("empty dataset is stored", func(t *testing.T) {
		assertNoError(t, repo.SaveDataset(ctx, domain.Dataset{}, "empty"))

		ds, err := repo.LoadDataset(ctx)
		assertNoError(t, err)
		assertEqual(t, domain.Dataset{}, ds)
	})
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	assertNoError(t, err)
	assertEqual(t, repository.Stats{}, stats)

	before := time.Now().Add(-time.Second)
	assertNoError(t, repo.SaveDataset(ctx, testDataset(), "data.json"))

	stats, err = repo.Stats(ctx)
	assertNoError(t, err)
	assertEqual(t, 3, stats.Families)
	assertEqual(t, 4, stats.Members)
	assertEqual(t, 3, stats.Connections)
	assertEqual(t, "data.json", stats.Source)
	if stats.UpdatedAt.Before(before) {
		t.Errorf("expected UpdatedAt after %v, got %v", before, stats.UpdatedAt)
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynasty.db")
	ctx := context.Background()

	repo, err := New(path)
	assertNoError(t, err)
	assertNoError(t, repo.SaveDataset(ctx, testDataset(), "data.json"))
	assertNoError(t, repo.Close())

	reopened, err := New(path)
	assertNoError(t, err)
	defer reopened.Close()

	ds, err := reopened.LoadDataset(ctx)
	assertNoError(t, err)
	assertEqual(t, testDataset(), ds)
}

func TestSaveDatasetCancelled(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.SaveDataset(ctx, testDataset(), "x"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := repo.LoadDataset(context.Background()); !errors.Is(err, repository.ErrEmptyStore) {
		t.Fatalf("expected nothing to be stored, got %v", err)
	}
}
