package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movieapi/internal/model"
)

func TestHistoryUpsertCreatesThenOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	pos1 := 120
	completed1 := false
	require.NoError(t, repo.Upsert(1, 10, &pos1, &completed1))

	first, err := repo.FindByUserAndMovie(1, 10)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 120, *first.WatchPositionSeconds)

	time.Sleep(5 * time.Millisecond)

	pos2 := 3600
	completed2 := true
	require.NoError(t, repo.Upsert(1, 10, &pos2, &completed2))

	// 同一 (user, movie) 只保留一条记录，内容为第二次写入的值
	records, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	second := records[0]
	assert.Equal(t, 3600, *second.WatchPositionSeconds)
	assert.True(t, *second.Completed)
	assert.True(t, second.LastUpdated.After(first.LastUpdated))
	// watched_at 只在首次创建时写入
	assert.WithinDuration(t, first.WatchedAt, second.WatchedAt, time.Millisecond)
}

func TestHistoryUpsertOverwritesWithNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	pos := 500
	completed := true
	require.NoError(t, repo.Upsert(1, 10, &pos, &completed))
	// 整体覆盖：第二次的 nil 也要写进去，不做字段级合并
	require.NoError(t, repo.Upsert(1, 10, nil, nil))

	record, err := repo.FindByUserAndMovie(1, 10)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Nil(t, record.WatchPositionSeconds)
	assert.Nil(t, record.Completed)
}

func TestHistorySeparateRecordsPerMovie(t *testing.T) {
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	require.NoError(t, repo.Upsert(1, 10, nil, nil))
	require.NoError(t, repo.Upsert(1, 11, nil, nil))
	require.NoError(t, repo.Upsert(2, 10, nil, nil))

	records, err := repo.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHistoryFindMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	record, err := repo.FindByUserAndMovie(1, 999)
	require.NoError(t, err)
	assert.Nil(t, record)

	var count int64
	require.NoError(t, db.Model(&model.WatchHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}
