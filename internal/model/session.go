package model

import (
	"time"
)

// StreamingSession 播放会话记录
// 一次播放对应一行，SessionID 由服务端生成并全局唯一。
// UserID 为 nil 表示游客播放。EndTime 为 nil 表示会话未显式结束。
type StreamingSession struct {
	ID              int        `json:"id" db:"id" gorm:"primaryKey"`
	SessionID       string     `json:"session_id" db:"session_id" gorm:"uniqueIndex"`
	UserID          *int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID         int        `json:"movie_id" db:"movie_id" gorm:"index;not null"`
	IPAddress       string     `json:"ip_address" db:"ip_address"`
	UserAgent       string     `json:"user_agent" db:"user_agent"`
	StartTime       time.Time  `json:"start_time" db:"start_time" gorm:"index"`
	EndTime         *time.Time `json:"end_time" db:"end_time"`
	DurationWatched *int       `json:"duration_watched" db:"duration_watched"` // 实际观看时长（秒）
	Completed       bool       `json:"completed" db:"completed"`
}
