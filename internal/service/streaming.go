package service

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/repository"
)

// ErrMovieNotFound 电影不存在
var ErrMovieNotFound = errors.New("电影不存在")

// completionRatio 观看时长达到总时长的该比例即视为看完
const completionRatio = 0.9

// StreamingService 播放会话与观影进度服务
type StreamingService struct {
	sessionRepo *repository.SessionRepository
	movieRepo   *repository.MovieRepository
	historyRepo *repository.HistoryRepository
}

// NewStreamingService 创建播放服务
func NewStreamingService(
	sessionRepo *repository.SessionRepository,
	movieRepo *repository.MovieRepository,
	historyRepo *repository.HistoryRepository,
) *StreamingService {
	return &StreamingService{
		sessionRepo: sessionRepo,
		movieRepo:   movieRepo,
		historyRepo: historyRepo,
	}
}

// StartSession 开始一次播放会话
// 同时给电影播放量 +1；播放量自增失败只记日志，不影响会话创建。
func (s *StreamingService) StartSession(sessionID string, userID *int, movie *model.Movie, r *http.Request) (*model.StreamingSession, error) {
	session := &model.StreamingSession{
		SessionID: sessionID,
		UserID:    userID,
		MovieID:   movie.ID,
		IPAddress: ExtractClientIP(r),
		UserAgent: r.UserAgent(),
		StartTime: time.Now(),
	}

	if err := s.movieRepo.IncrementViewCount(movie.ID); err != nil {
		log.Printf("[StreamingService] 播放量自增失败 movie=%d: %v", movie.ID, err)
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return session, nil
}

// EndSession 结束播放会话
// 会话不存在时静默返回。观看时长达到电影总时长的 90% 时标记看完；
// 电影总时长未知则不做自动看完判定。
func (s *StreamingService) EndSession(sessionID string, durationWatched *int) error {
	session, err := s.sessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	now := time.Now()
	session.EndTime = &now
	session.DurationWatched = durationWatched

	if durationWatched != nil {
		movie, err := s.movieRepo.FindByID(session.MovieID)
		if err != nil {
			log.Printf("[StreamingService] 结束会话时查电影失败 movie=%d: %v", session.MovieID, err)
		}
		if movie != nil && movie.DurationSeconds != nil &&
			float64(*durationWatched) >= float64(*movie.DurationSeconds)*completionRatio {
			session.Completed = true
		}
	}

	return s.sessionRepo.Update(session)
}

// UpdateWatchProgress 更新观影进度（客户端显式上报）
func (s *StreamingService) UpdateWatchProgress(userID, movieID int, position *int, completed *bool) error {
	movie, err := s.movieRepo.FindByID(movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrMovieNotFound
	}

	return s.historyRepo.Upsert(userID, movie.ID, position, completed)
}

// MarkCompleted 直接把某部电影标记为看完
func (s *StreamingService) MarkCompleted(userID, movieID int) error {
	completed := true
	return s.UpdateWatchProgress(userID, movieID, nil, &completed)
}

// GetHistory 用户观影进度列表
func (s *StreamingService) GetHistory(userID int) ([]*model.WatchHistory, error) {
	return s.historyRepo.ListByUser(userID)
}

// ActiveStreams 最近一小时内开始且未结束的会话（观测用）
func (s *StreamingService) ActiveStreams() ([]*model.StreamingSession, error) {
	return s.sessionRepo.ListActive(time.Now().Add(-time.Hour))
}

// TotalViews 某部电影的会话总数
// 与 movie.view_count 独立，后者才是权威计数。
func (s *StreamingService) TotalViews(movieID int) (int64, error) {
	return s.sessionRepo.CountByMovie(movieID)
}

// ExtractClientIP 提取客户端 IP
// 优先级：X-Forwarded-For 第一段 > X-Real-IP > 连接远端地址。
func ExtractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
