package model

import (
	"time"
)

// WatchHistory 观影进度记录
// 以 (user_id, movie_id) 为自然主键做 Upsert：存在则整体覆盖进度字段并更新 LastUpdated，
// 不存在则创建（WatchedAt 仅在创建时写入）。
type WatchHistory struct {
	ID                   int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID               int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_history_user_movie"`
	MovieID              int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_history_user_movie"`
	WatchPositionSeconds *int      `json:"watch_position_seconds" db:"watch_position_seconds"`
	Completed            *bool     `json:"completed" db:"completed"`
	WatchedAt            time.Time `json:"watched_at" db:"watched_at"`
	LastUpdated          time.Time `json:"last_updated" db:"last_updated"`
}
