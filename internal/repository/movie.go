package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/user/movieapi/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// List 电影列表（按更新时间倒序）
func (r *MovieRepository) List(limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, err
}

// Search 按标题/简介模糊检索
func (r *MovieRepository) Search(keyword string, limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	pattern := "%" + keyword + "%"
	err := r.db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("view_count DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// ListByGenre 按单一类型筛选
func (r *MovieRepository) ListByGenre(genre string, limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("genre = ?", genre).
		Order("imdb_rating DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	return movies, err
}

// ListByGenres 按多个类型筛选（推荐页用）
func (r *MovieRepository) ListByGenres(genres []string, limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("genre = ANY(?)", pq.Array(genres)).
		Order("imdb_rating DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// ListTrending 热播电影
func (r *MovieRepository) ListTrending(limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("trending = ?", true).
		Order("view_count DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// TopViewed 播放量最高的电影
func (r *MovieRepository) TopViewed(limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("view_count DESC").Limit(limit).Find(&movies).Error
	return movies, err
}

// Create 创建电影
func (r *MovieRepository) Create(movie *model.Movie) error {
	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return r.db.Create(movie).Error
}

// Update 更新电影
func (r *MovieRepository) Update(movie *model.Movie) error {
	movie.UpdatedAt = time.Now()
	return r.db.Save(movie).Error
}

// Delete 删除电影
func (r *MovieRepository) Delete(id int) error {
	return r.db.Delete(&model.Movie{}, id).Error
}

// SetFeatured 设置推荐位标记
func (r *MovieRepository) SetFeatured(id int, featured bool) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).
		Update("featured", featured).Error
}

// IncrementViewCount 播放量 +1
// 并发播放同一部电影时必须原子自增，不能读出来加一再写回。
func (r *MovieRepository) IncrementViewCount(id int) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Count 统计电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}
