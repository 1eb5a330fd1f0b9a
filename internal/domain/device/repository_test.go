package device

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&DeviceBinding{}))
	return db
}

func binding(id, accessID, fingerprint string) *DeviceBinding {
	now := time.Now()
	return &DeviceBinding{
		ID:             id,
		FileAccessID:   accessID,
		Fingerprint:    fingerprint,
		FirstAccessAt:  now,
		LastAccessedAt: now,
	}
}

func TestRepository_FirstInsertWins(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	inserted, err := repo.InsertIfAbsent(ctx, binding("b-1", "access-1", "fp-first"))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, binding("b-2", "access-1", "fp-second"))
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByAccessID(ctx, "access-1")
	require.NoError(t, err)
	assert.Equal(t, "fp-first", got.Fingerprint)
}

func TestRepository_ConcurrentFirstRedemption(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	var wg sync.WaitGroup
	results := make(chan bool, 5)
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.InsertIfAbsent(context.Background(),
				binding(fmt.Sprintf("b-%d", i), "access-1", fmt.Sprintf("fp-%d", i)))
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for ok := range results {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestRepository_GetByAccessIDMissing(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.GetByAccessID(context.Background(), "nothing")

	assert.ErrorIs(t, err, ErrBindingNotFound)
}

func TestRepository_TouchLastAccess(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	b := binding("b-1", "access-1", "fp-1")
	b.LastAccessedAt = time.Now().Add(-time.Hour)
	_, err := repo.InsertIfAbsent(ctx, b)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, repo.TouchLastAccess(ctx, "access-1", now))

	got, err := repo.GetByAccessID(ctx, "access-1")
	require.NoError(t, err)
	assert.WithinDuration(t, now, got.LastAccessedAt, time.Second)
	assert.WithinDuration(t, b.FirstAccessAt, got.FirstAccessAt, time.Second)
}
