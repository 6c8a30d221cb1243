package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/movieapi/internal/middleware"
	"github.com/user/movieapi/internal/utils"
)

// StreamVideo 视频流接口
// 依次：查电影 → 解析沙箱内文件路径 → 记播放会话 → 评估 Range 头 →
// 按结果应答 200 全量 / 206 分段 / 416 越界。会话记录是尽力而为，失败不阻断推流。
func (h *Handler) StreamVideo(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "")
		return
	}

	movie, err := h.Catalog.GetMovie(movieID)
	if err != nil {
		log.Printf("[Stream] 查询电影失败 movie=%d: %v", movieID, err)
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	videoPath, err := utils.ResolveVideoPath(movie.VideoURL, h.Config.VideoDir)
	if err != nil {
		if errors.Is(err, utils.ErrPathOutsideRoot) {
			// 安全事件：不向客户端回显任何路径信息
			log.Printf("[Stream] 视频路径越出根目录 movie=%d", movieID)
			c.Status(http.StatusForbidden)
			return
		}
		log.Printf("[Stream] 视频文件缺失 movie=%d", movieID)
		utils.NotFound(c, "")
		return
	}

	// 记录播放会话并累加播放量（游客也记录，UserID 为空）
	sessionID := uuid.NewString()
	if _, err := h.Streaming.StartSession(sessionID, middleware.GetUserIDPtr(c), movie, c.Request); err != nil {
		log.Printf("[Stream] 会话记录失败 movie=%d session=%s: %v", movieID, sessionID, err)
	}

	file, err := os.Open(videoPath)
	if err != nil {
		log.Printf("[Stream] 打开视频失败 movie=%d session=%s: %v", movieID, sessionID, err)
		utils.InternalServerError(c, "")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Printf("[Stream] 读取文件信息失败 movie=%d session=%s: %v", movieID, sessionID, err)
		utils.InternalServerError(c, "")
		return
	}
	fileSize := info.Size()

	contentType := mime.TypeByExtension(filepath.Ext(videoPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	byteRange, err := utils.ParseRange(c.GetHeader("Range"), fileSize)
	if err != nil {
		// Range 数值解析失败走通用错误路径，对外表现为 500
		log.Printf("[Stream] Range 解析失败 movie=%d session=%s: %v", movieID, sessionID, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	switch byteRange.Kind {
	case utils.RangeUnsatisfiable:
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", fileSize))
		c.Status(http.StatusRequestedRangeNotSatisfiable)

	case utils.RangePartial:
		// 定位读取，不把整个文件读进内存
		if _, err := file.Seek(byteRange.Start, io.SeekStart); err != nil {
			log.Printf("[Stream] 文件定位失败 movie=%d session=%s: %v", movieID, sessionID, err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("Accept-Ranges", "bytes")
		c.Header("Cache-Control", "max-age=3600")
		c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", byteRange.Start, byteRange.End, fileSize))
		c.DataFromReader(http.StatusPartialContent, byteRange.ContentLength(), contentType,
			io.LimitReader(file, byteRange.ContentLength()), nil)

	default:
		c.Header("Accept-Ranges", "bytes")
		c.Header("Cache-Control", "max-age=3600")
		c.DataFromReader(http.StatusOK, fileSize, contentType, file, nil)
	}
}

// VideoProgressRequest 进度上报请求体
type VideoProgressRequest struct {
	MovieID         int   `json:"movieId" binding:"required"`
	CurrentPosition *int  `json:"currentPosition"`
	TotalDuration   *int  `json:"totalDuration"`
	Completed       *bool `json:"completed"`
}

// UpdateProgress 保存观影进度
func (h *Handler) UpdateProgress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "请先登录再保存进度")
		return
	}

	var req VideoProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	if err := h.Streaming.UpdateWatchProgress(userID, req.MovieID, req.CurrentPosition, req.Completed); err != nil {
		// 显式状态变更请求，失败必须让调用方感知
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "进度已保存", nil)
}

// MarkCompleted 将某部电影标记为看完
func (h *Handler) MarkCompleted(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	if err := h.Streaming.MarkCompleted(userID, movieID); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "已标记为看完", nil)
}

// EndSessionRequest 结束会话请求体
type EndSessionRequest struct {
	DurationWatched *int `json:"durationWatched"`
}

// EndSession 结束播放会话
// 会话不存在不算错误，幂等返回成功。
func (h *Handler) EndSession(c *gin.Context) {
	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	if err := h.Streaming.EndSession(c.Param("sessionId"), req.DurationWatched); err != nil {
		log.Printf("[Stream] 结束会话失败 session=%s: %v", c.Param("sessionId"), err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, nil)
}

// WatchHistoryList 用户观影进度列表
func (h *Handler) WatchHistoryList(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	histories, err := h.Streaming.GetHistory(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, histories)
}

// UserSessions 当前用户最近的播放会话
func (h *Handler) UserSessions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	sessions, err := h.Repos.Session.ListByUser(userID, 50)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, sessions)
}

// ActiveStreams 最近一小时未结束的播放会话（管理后台观测）
func (h *Handler) ActiveStreams(c *gin.Context) {
	sessions, err := h.Streaming.ActiveStreams()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, sessions)
}

// MovieViews 某部电影的播放会话总数
func (h *Handler) MovieViews(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	total, err := h.Streaming.TotalViews(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{"movie_id": movieID, "total_views": total})
}
