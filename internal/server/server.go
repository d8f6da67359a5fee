package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "admaker/docs"
	"admaker/internal/assets"
	"admaker/internal/config"
	"admaker/internal/connector"
	"admaker/internal/handler"
	commercialHandler "admaker/internal/handler/commercial"
	"admaker/internal/pkg/cache"
	"admaker/internal/pkg/ffmpeg"
	"admaker/internal/server/middleware"
	"admaker/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	store  assets.Store
	redis  *cache.RedisCache
	media  *ffmpeg.Client
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化产物存储
	store, err := assets.New(&cfg.Assets)
	if err != nil {
		return nil, err
	}
	log.Info().Str("type", store.Type()).Msg("asset store initialized")

	// 初始化 Redis (可选，仅用于音色目录缓存)
	var redisCache *cache.RedisCache
	if cfg.Cache.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Cache.Addr).Msg("connected to Redis")
		}
	}

	media := ffmpeg.NewClient()
	if !media.Installed(context.Background()) {
		log.Warn().Msg("ffmpeg not found, video composition will return mock data")
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		store:  store,
		redis:  redisCache,
		media:  media,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.cfg, s.media)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 连接器
	scriptGen := connector.NewScriptGenerator(context.Background(), &s.cfg.AI, &s.cfg.Pipeline)
	videoGen := connector.NewVideoGenerator(&s.cfg.Video, s.store, s.media)
	sfxGen := connector.NewSFXGenerator(&s.cfg.Audio, &s.cfg.Pipeline, s.store)
	catalog := connector.NewVoiceCatalog(&s.cfg.Audio, &s.cfg.Pipeline, s.redis, s.cfg.Cache.VoiceTTL)
	narrator := connector.NewNarrator(&s.cfg.Audio, &s.cfg.Pipeline, s.store, catalog)

	// 服务
	pipeline := service.NewPipelineService(scriptGen, videoGen, sfxGen, &s.cfg.Pipeline)
	compose := service.NewComposeService(s.media, s.store, &s.cfg.Pipeline)

	hdl := commercialHandler.NewHandler(pipeline, compose, narrator, catalog)

	api := s.engine.Group("/api")
	{
		api.POST("/generate-script", hdl.GenerateScript)
		api.POST("/generate-video", hdl.GenerateVideo)
		api.POST("/generate-sfx", hdl.GenerateSFX)
		api.GET("/voices", hdl.ListVoices)
		api.POST("/generate-voiceover", hdl.GenerateVoiceover)
		api.POST("/stitch-videos", hdl.StitchVideos)
		api.POST("/create-final-video", hdl.CreateFinalVideo)

		// 占位资源：mock 产物的URL必须可访问
		api.GET("/mock-sfx/:name", hdl.MockSFX)
		api.GET("/mock-voiceover/:name", hdl.MockVoiceover)
		api.GET("/placeholder-video/:scene", hdl.PlaceholderVideo)
		api.GET("/placeholder-thumbnail/:scene", hdl.PlaceholderThumbnail)
	}

	// 产物静态文件（仅本地存储；OSS 产物直接走对象存储URL）
	for _, kind := range assets.Kinds() {
		if dir := s.store.Dir(kind); dir != "" {
			s.engine.Static("/api/"+string(kind), dir)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
