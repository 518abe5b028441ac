package server

import (
	_ "embed"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/DJStompZone/paycorbot/internal/config"
	"github.com/DJStompZone/paycorbot/internal/store"
)

//go:embed index.html
var indexHTML []byte

// Server 本地 HTTP 服务器
// 提供凭据表单、载荷上传、解析运行与报表下载
type Server struct {
	router  *gin.Engine
	cfg     *config.AppConfig
	store   *store.Store
	dataDir string

	// 一次只跑一份载荷
	runMu sync.Mutex
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	st, err := store.New(filepath.Join(dataDir, "paycorbot.db"))
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	s := &Server{
		router:  gin.Default(),
		cfg:     cfg,
		store:   st,
		dataDir: dataDir,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	api := s.router.Group("/api")
	{
		api.GET("/credentials", s.getCredentials)
		api.POST("/credentials", s.saveCredentials)
		api.POST("/payload", s.uploadPayload)
		api.POST("/run", s.runPipeline)
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id/shifts", s.runShifts)
		api.GET("/reports/:id/download", s.downloadReport)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放持有的资源
func (s *Server) Close() error {
	return s.store.Close()
}
