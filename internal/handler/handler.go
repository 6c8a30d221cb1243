package handler

import (
	"github.com/user/movieapi/internal/config"
	"github.com/user/movieapi/internal/repository"
	"github.com/user/movieapi/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos     *repository.Repositories
	Config    *config.Config
	Catalog   *service.CatalogService
	Streaming *service.StreamingService
	Stats     *service.StatsService
	Upload    *service.UploadService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	registerValidations()

	return &Handler{
		Repos:     repos,
		Config:    cfg,
		Catalog:   service.NewCatalogService(repos.Movie),
		Streaming: service.NewStreamingService(repos.Session, repos.Movie, repos.History),
		Stats:     service.NewStatsService(repos),
		Upload:    service.NewUploadService(cfg.UploadDir),
	}
}
