package handler_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movieapi/internal/config"
	"github.com/user/movieapi/internal/handler"
	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/repository"
	"github.com/user/movieapi/internal/router"
	"github.com/user/movieapi/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) (*gin.Engine, *repository.Repositories, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitCache()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		Env:       "test",
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
		VideoDir:  t.TempDir(),
		UploadDir: t.TempDir(),
	}

	r := gin.New()
	router.RegisterRoutes(r, handler.NewHandler(repos, cfg))
	return r, repos, cfg
}

// newVideoMovie 写一个内容确定的视频文件并登记对应电影
func newVideoMovie(t *testing.T, repos *repository.Repositories, cfg *config.Config, size int) (*model.Movie, []byte) {
	t.Helper()

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.VideoDir, "movie.mp4"), data, 0o644))

	movie := &model.Movie{Title: "流测试", VideoURL: "/uploads/videos/movie.mp4"}
	require.NoError(t, repos.Movie.Create(movie))
	return movie, data
}

func doStream(r *gin.Engine, movieID int, rangeHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/stream/%d", movieID), nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStreamFullBody(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, data := newVideoMovie(t, repos, cfg, 1000)

	w := doStream(r, movie.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "max-age=3600", w.Header().Get("Cache-Control"))
	assert.True(t, bytes.Equal(data, w.Body.Bytes()))
}

func TestStreamPartialContent(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, data := newVideoMovie(t, repos, cfg, 1000)

	w := doStream(r, movie.ID, "bytes=200-299")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 200-299/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, "100", w.Header().Get("Content-Length"))
	assert.True(t, bytes.Equal(data[200:300], w.Body.Bytes()))
}

func TestStreamOpenEndedRange(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, data := newVideoMovie(t, repos, cfg, 1000)

	w := doStream(r, movie.ID, "bytes=500-")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 500-999/1000", w.Header().Get("Content-Range"))
	assert.True(t, bytes.Equal(data[500:], w.Body.Bytes()))
}

func TestStreamUnsatisfiableRange(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, _ := newVideoMovie(t, repos, cfg, 1000)

	w := doStream(r, movie.ID, "bytes=999-1000")
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
	assert.Equal(t, "bytes */1000", w.Header().Get("Content-Range"))
	assert.Empty(t, w.Body.Bytes())
}

func TestStreamMalformedRange(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, _ := newVideoMovie(t, repos, cfg, 1000)

	w := doStream(r, movie.ID, "bytes=abc-")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStreamUnknownMovie(t *testing.T) {
	r, _, _ := setupServer(t)

	w := doStream(r, 9999, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamMissingFile(t *testing.T) {
	r, repos, _ := setupServer(t)

	movie := &model.Movie{Title: "无文件", VideoURL: "missing.mp4"}
	require.NoError(t, repos.Movie.Create(movie))

	w := doStream(r, movie.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamTraversalForbidden(t *testing.T) {
	r, repos, _ := setupServer(t)

	movie := &model.Movie{Title: "越权", VideoURL: ".."}
	require.NoError(t, repos.Movie.Create(movie))

	w := doStream(r, movie.ID, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	// 不回显任何路径信息
	assert.Empty(t, w.Body.Bytes())
}

func TestStreamRecordsSessionAndViewCount(t *testing.T) {
	r, repos, cfg := setupServer(t)
	movie, _ := newVideoMovie(t, repos, cfg, 1000)

	doStream(r, movie.ID, "")
	doStream(r, movie.ID, "bytes=0-99")

	count, err := repos.Session.CountByMovie(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	found, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ViewCount)

	// 游客播放也要落会话，UserID 为空
	active, err := repos.Session.ListActive(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Nil(t, active[0].UserID)
}
