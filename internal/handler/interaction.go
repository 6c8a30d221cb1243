package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/movieapi/internal/middleware"
	"github.com/user/movieapi/internal/utils"
)

// ==================== 评论 ====================

// CommentRequest 评论请求体
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ListComments 某部电影的评论列表
func (h *Handler) ListComments(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	limit, offset := pageParams(c)
	comments, err := h.Repos.Comment.ListByMovie(movieID, limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, comments)
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评论内容不能为空")
		return
	}

	movie, err := h.Catalog.GetMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	comment, err := h.Repos.Comment.Create(userID, movieID, req.Content)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, comment)
}

// UpdateComment 修改自己的评论
func (h *Handler) UpdateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(commentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "")
		return
	}
	if comment.UserID != userID {
		utils.Forbidden(c, "只能修改自己的评论")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评论内容不能为空")
		return
	}

	comment.Content = req.Content
	if err := h.Repos.Comment.Update(comment); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, comment)
}

// DeleteComment 删除评论（本人或管理员）
func (h *Handler) DeleteComment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(commentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "")
		return
	}
	if comment.UserID != userID && c.GetString("role") != "admin" {
		utils.Forbidden(c, "")
		return
	}

	if err := h.Repos.Comment.Delete(commentID); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已删除", nil)
}

// ==================== 收藏 / 想看 / 稍后观看 ====================

// AddFavorite 添加收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	h.addUserMovie(c, h.Repos.Favorite.Add)
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeUserMovie(c, h.Repos.Favorite.Remove)
}

// CheckFavorite 查询某部电影是否已收藏
func (h *Handler) CheckFavorite(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	favorited, err := h.Repos.Favorite.IsFavorited(middleware.GetUserID(c), movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{"favorited": favorited})
}

// ListFavorites 收藏列表
func (h *Handler) ListFavorites(c *gin.Context) {
	limit, offset := pageParams(c)
	favorites, err := h.Repos.Favorite.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, favorites)
}

// AddToWatchlist 加入想看清单
func (h *Handler) AddToWatchlist(c *gin.Context) {
	h.addUserMovie(c, h.Repos.Watchlist.Add)
}

// RemoveFromWatchlist 移出想看清单
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	h.removeUserMovie(c, h.Repos.Watchlist.Remove)
}

// ListWatchlist 想看清单
func (h *Handler) ListWatchlist(c *gin.Context) {
	items, err := h.Repos.Watchlist.ListByUser(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, items)
}

// AddToWatchLater 加入稍后观看
func (h *Handler) AddToWatchLater(c *gin.Context) {
	h.addUserMovie(c, h.Repos.WatchLater.Add)
}

// RemoveFromWatchLater 移出稍后观看
func (h *Handler) RemoveFromWatchLater(c *gin.Context) {
	h.removeUserMovie(c, h.Repos.WatchLater.Remove)
}

// ListWatchLater 稍后观看列表
func (h *Handler) ListWatchLater(c *gin.Context) {
	items, err := h.Repos.WatchLater.ListByUser(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, items)
}

// addUserMovie 收藏/清单类接口的公共添加逻辑：校验电影存在后落库
func (h *Handler) addUserMovie(c *gin.Context, add func(userID, movieID int) error) {
	userID := middleware.GetUserID(c)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Catalog.GetMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	if err := add(userID, movieID); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已添加", nil)
}

// removeUserMovie 收藏/清单类接口的公共移除逻辑
func (h *Handler) removeUserMovie(c *gin.Context, remove func(userID, movieID int) error) {
	userID := middleware.GetUserID(c)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	if err := remove(userID, movieID); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已移除", nil)
}
