package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/config"
	"admaker/internal/pkg/ffmpeg"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg   *config.Config
	media *ffmpeg.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config, media *ffmpeg.Client) *HealthHandler {
	return &HealthHandler{
		cfg:   cfg,
		media: media,
	}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
// 带上各生成能力的配置状态，未配置的能力走降级而不是不可用
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"capabilities": gin.H{
			"script": h.cfg.AI.APIKey != "",
			"video":  h.cfg.Video.APIKey != "",
			"audio":  h.cfg.Audio.APIKey != "",
			"ffmpeg": h.media.Installed(c.Request.Context()),
		},
	})
}
