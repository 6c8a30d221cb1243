package repository

import (
	"errors"
	"time"

	"github.com/user/movieapi/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 发表评论
func (r *CommentRepository) Create(userID, movieID int, content string) (*model.Comment, error) {
	now := time.Now()
	comment := &model.Comment{
		UserID:    userID,
		MovieID:   movieID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// FindByID 根据 ID 查找评论
func (r *CommentRepository) FindByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByMovie 某部电影的评论（按时间倒序）
func (r *CommentRepository) ListByMovie(movieID, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// Update 修改评论内容
func (r *CommentRepository) Update(comment *model.Comment) error {
	comment.UpdatedAt = time.Now()
	return r.db.Save(comment).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(id int) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// Count 统计评论总数
func (r *CommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Count(&count).Error
	return count, err
}
