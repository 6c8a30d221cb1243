package handler

import (
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/utils"
)

// ListMovies 电影列表（分页）
func (h *Handler) ListMovies(c *gin.Context) {
	limit, offset := pageParams(c)
	movies, err := h.Repos.Movie.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Catalog.GetMovie(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	utils.Success(c, movie)
}

// SearchMovies 按关键词检索
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		utils.BadRequest(c, "缺少检索关键词")
		return
	}

	movies, err := h.Catalog.SearchMovies(keyword, 50)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// MoviesByGenre 按类型筛选
func (h *Handler) MoviesByGenre(c *gin.Context) {
	limit, offset := pageParams(c)
	movies, err := h.Repos.Movie.ListByGenre(c.Param("genre"), limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// Recommendations 按偏好类型推荐（genres 逗号分隔）
func (h *Handler) Recommendations(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("genres"))
	if raw == "" {
		movies, err := h.Repos.Movie.ListTrending(20)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.Success(c, movies)
		return
	}

	genres := strings.Split(raw, ",")
	for i := range genres {
		genres[i] = strings.TrimSpace(genres[i])
	}

	movies, err := h.Repos.Movie.ListByGenres(genres, 20)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// TrendingMovies 热播电影
func (h *Handler) TrendingMovies(c *gin.Context) {
	movies, err := h.Repos.Movie.ListTrending(20)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// MovieRequest 创建/更新电影请求体
type MovieRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	ReleaseYear     int     `json:"releaseYear" binding:"omitempty,releaseyear"`
	DurationSeconds *int    `json:"durationSeconds"`
	VideoURL        string  `json:"videoUrl" binding:"required"`
	ThumbnailURL    string  `json:"thumbnailUrl"`
	PosterURL       string  `json:"posterUrl"`
	Genre           string  `json:"genre"`
	IMDbRating      float64 `json:"imdbRating"`
}

// CreateMovie 创建电影（管理员）
func (h *Handler) CreateMovie(c *gin.Context) {
	var req MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	movie := &model.Movie{
		Title:           req.Title,
		Description:     req.Description,
		ReleaseYear:     req.ReleaseYear,
		DurationSeconds: req.DurationSeconds,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		PosterURL:       req.PosterURL,
		Genre:           req.Genre,
		IMDbRating:      req.IMDbRating,
	}
	if err := h.Repos.Movie.Create(movie); err != nil {
		log.Printf("[Movie] 创建电影失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movie)
}

// UpdateMovie 更新电影（管理员）
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	var req MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.ReleaseYear = req.ReleaseYear
	movie.DurationSeconds = req.DurationSeconds
	movie.VideoURL = req.VideoURL
	movie.ThumbnailURL = req.ThumbnailURL
	movie.PosterURL = req.PosterURL
	movie.Genre = req.Genre
	movie.IMDbRating = req.IMDbRating

	if err := h.Repos.Movie.Update(movie); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	h.Catalog.InvalidateMovie(id)

	utils.Success(c, movie)
}

// DeleteMovie 删除电影（管理员）
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	if err := h.Repos.Movie.Delete(id); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	h.Catalog.InvalidateMovie(id)

	// 连带清理视频文件，失败只记日志
	if movie.VideoURL != "" {
		if err := h.Upload.Delete("videos", utils.ExtractFileName(movie.VideoURL)); err != nil {
			log.Printf("[Movie] 清理视频文件失败 movie=%d: %v", id, err)
		}
	}

	utils.SuccessWithMessage(c, "已删除", nil)
}

// FeatureMovie 设置/取消推荐位（管理员）
func (h *Handler) FeatureMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	featured := c.DefaultQuery("featured", "true") == "true"
	if err := h.Repos.Movie.SetFeatured(id, featured); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	h.Catalog.InvalidateMovie(id)

	utils.Success(c, gin.H{"id": id, "featured": featured})
}

// pageParams 解析分页参数，默认每页 20 条
func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
