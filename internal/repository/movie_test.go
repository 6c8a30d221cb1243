package repository

import (
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movieapi/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMovieFindByIDMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	movie, err := repo.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestMovieCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	duration := 7200
	movie := &model.Movie{Title: "测试电影", VideoURL: "test.mp4", DurationSeconds: &duration}
	require.NoError(t, repo.Create(movie))
	require.NotZero(t, movie.ID)

	found, err := repo.FindByID(movie.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "测试电影", found.Title)
	assert.Equal(t, 7200, *found.DurationSeconds)
	assert.Zero(t, found.ViewCount)
}

func TestMovieIncrementViewCountConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	movie := &model.Movie{Title: "并发", VideoURL: "c.mp4"}
	require.NoError(t, repo.Create(movie))

	// N 个并发自增最终必须恰好 +N，不允许丢失更新
	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementViewCount(movie.ID))
		}()
	}
	wg.Wait()

	found, err := repo.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), found.ViewCount)
}

func TestMovieIncrementViewCountIsSingleUpdate(t *testing.T) {
	// 自增必须是数据库端的原子 UPDATE，不能读出来加一再写回
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "movies" SET "view_count"=view_count + $1 WHERE id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewMovieRepository(db).IncrementViewCount(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
