package repository

import (
	"time"

	"github.com/user/movieapi/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add 加入想看清单
func (r *WatchlistRepository) Add(userID, movieID int) error {
	item := &model.WatchlistItem{
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

// Remove 移出想看清单
func (r *WatchlistRepository) Remove(userID, movieID int) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&model.WatchlistItem{}).Error
}

// ListByUser 获取用户想看清单
func (r *WatchlistRepository) ListByUser(userID int) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

type WatchLaterRepository struct {
	db *gorm.DB
}

func NewWatchLaterRepository(db *gorm.DB) *WatchLaterRepository {
	return &WatchLaterRepository{db: db}
}

// Add 加入稍后观看
func (r *WatchLaterRepository) Add(userID, movieID int) error {
	item := &model.WatchLaterItem{
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

// Remove 移出稍后观看
func (r *WatchLaterRepository) Remove(userID, movieID int) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&model.WatchLaterItem{}).Error
}

// ListByUser 获取用户稍后观看列表
func (r *WatchLaterRepository) ListByUser(userID int) ([]*model.WatchLaterItem, error) {
	var items []*model.WatchLaterItem
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
