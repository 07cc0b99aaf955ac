package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-aid-matcher/config"
	"student-aid-matcher/logger"
	"student-aid-matcher/models"
)

var (
	_ SessionStore = (*RedisStore)(nil)
	_ SessionStore = (*MemoryStore)(nil)
)

func sampleSession(id string, created time.Time) models.Session {
	match := models.MatchResult{
		Student: models.Student{Name: "张三", IDNumber: "110101200001010011", Class: "1班"},
		Record: models.DifficultyRecord{
			IDNumber:       "110101200001010011",
			DifficultyType: models.RuralMinimumLiving,
			Source:         models.RecordSource{File: "rural.xls", Sheet: "Sheet2", Row: 3, Column: 7},
		},
	}
	return models.Session{
		ID:             id,
		Category:       models.RuralMinimumLiving,
		StudentFile:    "students.xlsx",
		DifficultyFile: "rural.xls",
		Matches:        []models.MatchResult{match},
		Statistics: &models.MatchStatistics{
			TotalStudents:        10,
			TotalMatches:         1,
			DifficultyTypeCounts: map[models.DifficultyType]int{models.RuralMinimumLiving: 1},
		},
		CreatedAt: created,
	}
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Minute, logger.NewNop()), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	created := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

	want := sampleSession("s1", created)
	require.NoError(t, store.Save(ctx, want))
	assert.True(t, mr.Exists("session:s1"))
	assert.Equal(t, time.Minute, mr.TTL("session:s1"))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Matches, got.Matches)
	assert.Equal(t, want.Statistics, got.Statistics)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	missing, err := store.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisStoreExpiryPrunesIndex(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	require.NoError(t, store.Save(ctx, sampleSession("old", time.Now())))

	mr.FastForward(2 * time.Minute)

	got, err := store.Load(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)

	members, err := mr.Members(sessionsKey)
	if err == nil {
		assert.NotContains(t, members, "old")
	}
}

func TestRedisStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	base := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleSession("a", base)))
	require.NoError(t, store.Save(ctx, sampleSession("b", base.Add(time.Hour))))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, 1, list[0].TotalMatches)

	require.NoError(t, store.Delete(ctx, "b"))
	require.NoError(t, store.Delete(ctx, "never-saved"))
	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestRedisStoreRejectsEmptyID(t *testing.T) {
	store, _ := newRedisStore(t)
	assert.Error(t, store.Save(context.Background(), models.Session{}))
}

func TestInitializeRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := InitializeRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr(), DB: 8})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = InitializeRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, sampleSession("s1", now)))
	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)

	now = now.Add(time.Minute)
	got, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Save(ctx, sampleSession("a", base)))
	require.NoError(t, store.Save(ctx, sampleSession("b", base.Add(time.Minute))))
	assert.Error(t, store.Save(ctx, models.Session{}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	require.NoError(t, store.Delete(ctx, "a"))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
