package model

import (
	"time"
)

// Movie 电影模型
type Movie struct {
	ID              int       `json:"id" db:"id" gorm:"primaryKey"`
	Title           string    `json:"title" db:"title" gorm:"index"`
	Description     string    `json:"description" db:"description"`
	ReleaseYear     int       `json:"release_year" db:"release_year"`
	DurationSeconds *int      `json:"duration_seconds" db:"duration_seconds"` // 总时长（秒），未知为 nil
	VideoURL        string    `json:"video_url" db:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url" db:"thumbnail_url"`
	PosterURL       string    `json:"poster_url" db:"poster_url"`
	Genre           string    `json:"genre" db:"genre" gorm:"index"`
	IMDbRating      float64   `json:"imdb_rating" db:"imdb_rating" gorm:"index"`
	ViewCount       int64     `json:"view_count" db:"view_count"`
	Featured        bool      `json:"featured" db:"featured"`
	Trending        bool      `json:"trending" db:"trending"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at" gorm:"index"`
}
