package api

import (
	"context"
	"journal/internal/config"
	"journal/internal/entity"
	"journal/internal/export"
	"journal/internal/model"
	"journal/internal/service"
	"journal/internal/storage"
	"journal/internal/usecase"
	"journal/internal/validation"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 5 * time.Second

// entryRoutes 一种条目类型对应的服务与用例
type entryRoutes struct {
	service  *service.EntryService
	useCases usecase.EntryUseCases
}

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg       config.Config
	timeout   time.Duration
	validator *validation.Validator

	// 服务层
	tagService *service.TagService
	tags       usecase.TagUseCases
	entries    map[entity.EntryType]entryRoutes
	exporter   *export.Exporter
}

// NewHTTPHandler 创建 HTTP 处理器实例。store 为空时导出接口不可用。
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	tagService := service.NewTagService(repo)
	handler := &HTTPHandler{
		cfg:        cfg,
		timeout:    timeout,
		validator:  validation.New(),
		tagService: tagService,
		tags:       usecase.NewTagUseCases(tagService),
		entries:    make(map[entity.EntryType]entryRoutes, len(entity.EntryTypes)),
	}
	for _, entryType := range entity.EntryTypes {
		svc := service.NewEntryService(repo, entryType, tagService)
		handler.entries[svc.Type()] = entryRoutes{
			service:  svc,
			useCases: usecase.NewEntryUseCases(svc, entryType),
		}
	}
	if store != nil {
		handler.exporter = export.NewExporter(repo, store, cfg.ExportPrefix)
	}

	return handler, nil
}

// RegisterRoutes 注册全部接口
func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	for _, entryType := range entity.EntryTypes {
		group := apiGroup.Group("/" + string(entryType))
		group.POST("", h.AddEntry(entryType))
		group.GET("", h.GetEntriesByDate(entryType))
		group.GET("/:id", h.GetEntry(entryType))
		group.PATCH("/:id", h.UpdateEntry(entryType))
		group.DELETE("/:id", h.DeleteEntry(entryType))
	}

	tagGroup := apiGroup.Group("/tags")
	tagGroup.GET("", h.ListTags)
	tagGroup.POST("", h.CreateTag)
	tagGroup.GET("/:id", h.GetTag)
	tagGroup.PATCH("/:id", h.UpdateTag)
	tagGroup.DELETE("/:id", h.DeleteTag)

	apiGroup.POST("/export", h.Export)
}

func (h *HTTPHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
