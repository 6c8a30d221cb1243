package service

import (
	"fmt"
	"time"

	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/repository"
	"github.com/user/movieapi/internal/utils"
	"golang.org/x/sync/singleflight"
)

// CatalogService 电影目录服务
// 播放路径上的元数据查询走进程内缓存，searchCache 承接检索结果。
type CatalogService struct {
	movieRepo   *repository.MovieRepository
	searchCache *utils.SearchCache[[]*model.Movie]
	sf          singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(movieRepo *repository.MovieRepository) *CatalogService {
	return &CatalogService{
		movieRepo:   movieRepo,
		searchCache: utils.NewSearchCache[[]*model.Movie](500, 10*time.Minute),
	}
}

// GetMovie 根据 ID 取电影，带缓存
// 缓存未命中时用 singleflight 合并并发回源，避免同一部电影重复查库。
// 不存在时返回 (nil, nil)。
func (s *CatalogService) GetMovie(id int) (*model.Movie, error) {
	key := movieCacheKey(id)
	if cached, ok := utils.CacheGet(key); ok {
		return cached.(*model.Movie), nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		movie, err := s.movieRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if movie != nil {
			utils.CacheSet(key, movie, 5*time.Minute)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}

	return val.(*model.Movie), nil
}

// InvalidateMovie 电影被修改或删除后清除缓存
func (s *CatalogService) InvalidateMovie(id int) {
	utils.CacheDelete(movieCacheKey(id))
}

// SearchMovies 按关键词检索，结果进 LRU 缓存
func (s *CatalogService) SearchMovies(keyword string, limit int) ([]*model.Movie, error) {
	cacheKey := fmt.Sprintf("%s:%d", keyword, limit)
	if movies, ok := s.searchCache.Get(cacheKey); ok {
		return movies, nil
	}

	movies, err := s.movieRepo.Search(keyword, limit)
	if err != nil {
		return nil, err
	}

	s.searchCache.Set(cacheKey, movies)
	return movies, nil
}

func movieCacheKey(id int) string {
	return fmt.Sprintf("movie:%d", id)
}
