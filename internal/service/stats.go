package service

import (
	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/repository"
	"golang.org/x/sync/errgroup"
)

// AdminStats 管理后台统计数据
type AdminStats struct {
	TotalUsers    int64          `json:"total_users"`
	TotalMovies   int64          `json:"total_movies"`
	TotalViews    int64          `json:"total_views"` // 播放会话总数
	TotalComments int64          `json:"total_comments"`
	PopularMovies []*model.Movie `json:"popular_movies"`
}

// StatsService 统计服务
type StatsService struct {
	repos *repository.Repositories
}

// NewStatsService 创建统计服务
func NewStatsService(repos *repository.Repositories) *StatsService {
	return &StatsService{repos: repos}
}

// AdminStats 汇总后台统计，各项计数并发执行
func (s *StatsService) AdminStats() (*AdminStats, error) {
	var stats AdminStats
	var g errgroup.Group

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repos.User.Count()
		return
	})
	g.Go(func() (err error) {
		stats.TotalMovies, err = s.repos.Movie.Count()
		return
	})
	g.Go(func() (err error) {
		stats.TotalViews, err = s.repos.Session.Count()
		return
	})
	g.Go(func() (err error) {
		stats.TotalComments, err = s.repos.Comment.Count()
		return
	})
	g.Go(func() (err error) {
		stats.PopularMovies, err = s.repos.Movie.TopViewed(10)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}
