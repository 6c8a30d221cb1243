package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movieapi/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	userID := 7
	session := &model.StreamingSession{
		SessionID: "tok-1",
		UserID:    &userID,
		MovieID:   10,
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
		StartTime: time.Now(),
	}
	require.NoError(t, repo.Create(session))

	found, err := repo.FindBySessionID("tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 10, found.MovieID)
	assert.Nil(t, found.EndTime)

	now := time.Now()
	watched := 5400
	found.EndTime = &now
	found.DurationWatched = &watched
	found.Completed = true
	require.NoError(t, repo.Update(found))

	updated, err := repo.FindBySessionID("tok-1")
	require.NoError(t, err)
	require.NotNil(t, updated.EndTime)
	assert.False(t, updated.EndTime.Before(updated.StartTime))
	assert.True(t, updated.Completed)
}

func TestSessionFindMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	found, err := repo.FindBySessionID("no-such-token")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSessionListActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	now := time.Now()
	ended := now.Add(-time.Minute)

	// 活跃会话：一小时内开始且未结束
	require.NoError(t, repo.Create(&model.StreamingSession{
		SessionID: "active", MovieID: 1, StartTime: now.Add(-10 * time.Minute),
	}))
	// 已结束的不算
	require.NoError(t, repo.Create(&model.StreamingSession{
		SessionID: "ended", MovieID: 1, StartTime: now.Add(-20 * time.Minute), EndTime: &ended,
	}))
	// 太久之前开始的不算
	require.NoError(t, repo.Create(&model.StreamingSession{
		SessionID: "stale", MovieID: 1, StartTime: now.Add(-2 * time.Hour),
	}))

	active, err := repo.ListActive(now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "active", active[0].SessionID)
}

func TestSessionCountByMovie(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.StreamingSession{
			SessionID: fmt.Sprintf("m1-%d", i), MovieID: 1, StartTime: time.Now(),
		}))
	}
	require.NoError(t, repo.Create(&model.StreamingSession{
		SessionID: "m2-0", MovieID: 2, StartTime: time.Now(),
	}))

	count, err := repo.CountByMovie(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
