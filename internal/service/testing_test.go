package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/repository"
)

const (
	testAccessSecret  = "access-secret-access-secret-0123456789"
	testRefreshSecret = "refresh-secret-refresh-secret-0123456789"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func testTokens() crypto.TokenIssuer {
	return crypto.TokenIssuer{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}
}

// countingHasher records how many compares were run.
type countingHasher struct {
	*crypto.Hasher
	mu       sync.Mutex
	compares int
}

func newCountingHasher() *countingHasher {
	return &countingHasher{Hasher: crypto.NewHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Compare(hash, password string) error {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()
	return h.Hasher.Compare(hash, password)
}

func (h *countingHasher) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compares
}

// memoryDenylist is an in-process denylist for tests.
type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *memoryDenylist) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = expiresAt
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[token]
	return ok, nil
}

// recordingImages is an ImageStore that remembers what was deleted.
type recordingImages struct {
	mu      sync.Mutex
	deleted []string
}

func (r *recordingImages) Upload(_ context.Context, fileName, _ string, _ []byte) (string, error) {
	return "https://cdn.test/portfolio/" + fileName, nil
}

func (r *recordingImages) Delete(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, url)
	return nil
}

func (r *recordingImages) deletedURLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deleted...)
}

func ptr[T any](v T) *T {
	return &v
}
