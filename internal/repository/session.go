package repository

import (
	"errors"
	"time"

	"github.com/user/movieapi/internal/model"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create 创建播放会话
func (r *SessionRepository) Create(session *model.StreamingSession) error {
	return r.db.Create(session).Error
}

// FindBySessionID 根据会话令牌查找，不存在时返回 (nil, nil)
func (r *SessionRepository) FindBySessionID(sessionID string) (*model.StreamingSession, error) {
	var session model.StreamingSession
	err := r.db.Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// Update 保存会话变更
func (r *SessionRepository) Update(session *model.StreamingSession) error {
	return r.db.Save(session).Error
}

// ListActive 列出 since 之后开始且尚未结束的会话
func (r *SessionRepository) ListActive(since time.Time) ([]*model.StreamingSession, error) {
	var sessions []*model.StreamingSession
	err := r.db.Where("start_time >= ? AND end_time IS NULL", since).
		Order("start_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// CountByMovie 统计某部电影的会话总数（含已结束）
func (r *SessionRepository) CountByMovie(movieID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.StreamingSession{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}

// Count 统计所有会话数
func (r *SessionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.StreamingSession{}).Count(&count).Error
	return count, err
}

// ListByUser 某用户的播放会话（按开始时间倒序）
func (r *SessionRepository) ListByUser(userID, limit int) ([]*model.StreamingSession, error) {
	var sessions []*model.StreamingSession
	err := r.db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
