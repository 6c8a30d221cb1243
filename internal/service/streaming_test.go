package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*StreamingService, *repository.Repositories) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	return NewStreamingService(repos.Session, repos.Movie, repos.History), repos
}

func createMovie(t *testing.T, repos *repository.Repositories, durationSeconds *int) *model.Movie {
	t.Helper()
	movie := &model.Movie{Title: "m", VideoURL: "m.mp4", DurationSeconds: durationSeconds}
	require.NoError(t, repos.Movie.Create(movie))
	return movie
}

func TestStartSessionRecordsRowAndBumpsViewCount(t *testing.T) {
	svc, repos := newTestService(t)
	movie := createMovie(t, repos, nil)

	req := httptest.NewRequest("GET", "/api/stream/1", nil)
	req.Header.Set("User-Agent", "player/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	userID := 3
	session, err := svc.StartSession("tok-a", &userID, movie, req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", session.IPAddress)
	assert.Equal(t, "player/1.0", session.UserAgent)
	assert.False(t, session.StartTime.IsZero())

	found, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ViewCount)
}

func TestStartSessionAnonymous(t *testing.T) {
	svc, repos := newTestService(t)
	movie := createMovie(t, repos, nil)

	session, err := svc.StartSession("tok-anon", nil, movie, httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Nil(t, session.UserID)
}

func TestEndSessionCompletionRule(t *testing.T) {
	duration := 1000
	cases := []struct {
		name      string
		movieDur  *int
		watched   *int
		completed bool
	}{
		{"达到90%标记看完", &duration, intPtr(900), true},
		{"不足90%不标记", &duration, intPtr(899), false},
		{"时长未知不自动判定", nil, intPtr(100000), false},
		{"未上报观看时长", &duration, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repos := newTestService(t)
			movie := createMovie(t, repos, tc.movieDur)

			_, err := svc.StartSession("tok", nil, movie, httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)

			require.NoError(t, svc.EndSession("tok", tc.watched))

			session, err := repos.Session.FindBySessionID("tok")
			require.NoError(t, err)
			require.NotNil(t, session.EndTime)
			assert.False(t, session.EndTime.Before(session.StartTime))
			assert.Equal(t, tc.completed, session.Completed)
		})
	}
}

func TestEndSessionUnknownTokenIsNoop(t *testing.T) {
	svc, repos := newTestService(t)

	require.NoError(t, svc.EndSession("ghost", intPtr(100)))

	sessions, err := repos.Session.ListActive(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestUpdateWatchProgressUnknownMovie(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateWatchProgress(1, 999, intPtr(10), nil)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMarkCompleted(t *testing.T) {
	svc, repos := newTestService(t)
	movie := createMovie(t, repos, nil)

	require.NoError(t, svc.MarkCompleted(5, movie.ID))

	record, err := repos.History.FindByUserAndMovie(5, movie.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NotNil(t, record.Completed)
	assert.True(t, *record.Completed)
	assert.Nil(t, record.WatchPositionSeconds)
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:54321"

	assert.Equal(t, "192.0.2.1", ExtractClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ExtractClientIP(req))

	// X-Forwarded-For 优先，取首段并去空白
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ExtractClientIP(req))
}

func intPtr(v int) *int { return &v }
