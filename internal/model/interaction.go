package model

import (
	"time"
)

// Comment 影评评论
type Comment struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"index"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Favorite 收藏
type Favorite struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_favorite_user_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_favorite_user_movie"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID"` // 关联查询时填充
}

// WatchlistItem 想看清单
type WatchlistItem struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_watchlist_user_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_watchlist_user_movie"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

// WatchLaterItem 稍后观看
type WatchLaterItem struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_watchlater_user_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_watchlater_user_movie"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}
