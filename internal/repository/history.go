package repository

import (
	"errors"
	"time"

	"github.com/user/movieapi/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 更新或插入观影进度
// 以 (user_id, movie_id) 为冲突键：已存在则整体覆盖进度与完成标记（包含 nil），
// 并更新 last_updated；watched_at 仅在首次创建时写入。
func (r *HistoryRepository) Upsert(userID, movieID int, position *int, completed *bool) error {
	now := time.Now()
	record := &model.WatchHistory{
		UserID:               userID,
		MovieID:              movieID,
		WatchPositionSeconds: position,
		Completed:            completed,
		WatchedAt:            now,
		LastUpdated:          now,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watch_position_seconds", "completed", "last_updated"}),
	}).Create(record).Error
}

// ListByUser 获取用户观影进度列表
func (r *HistoryRepository) ListByUser(userID int) ([]*model.WatchHistory, error) {
	var histories []*model.WatchHistory
	err := r.db.Where("user_id = ?", userID).Find(&histories).Error
	return histories, err
}

// FindByUserAndMovie 查找单条进度记录，不存在时返回 (nil, nil)
func (r *HistoryRepository) FindByUserAndMovie(userID, movieID int) (*model.WatchHistory, error) {
	var history model.WatchHistory
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &history, nil
}
