package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"housetab/internal/core"
	"housetab/internal/storage"
)

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "housetab.db"))
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedCategory(t *testing.T, repo *storage.SQLiteRepository, id, name string) {
	t.Helper()
	c := core.Category{ID: id, Name: name, CreatedDate: time.Now()}
	if err := repo.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("seed category %s: %v", id, err)
	}
}

// fixedClock returns a clock pinned to t plus a settable offset.
type fixedClock struct {
	base   time.Time
	offset time.Duration
}

func (c *fixedClock) Now() time.Time {
	return c.base.Add(c.offset)
}

func newFixedClock() *fixedClock {
	return &fixedClock{base: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
}

// recordingPublisher captures sync messages instead of talking to a broker.
type recordingPublisher struct {
	upserts []string
	deletes []string
	fail    error
}

func (p *recordingPublisher) PublishExpenseUpsert(_ context.Context, id string) error {
	if p.fail != nil {
		return p.fail
	}
	p.upserts = append(p.upserts, id)
	return nil
}

func (p *recordingPublisher) PublishExpenseDelete(_ context.Context, id string) error {
	if p.fail != nil {
		return p.fail
	}
	p.deletes = append(p.deletes, id)
	return nil
}
