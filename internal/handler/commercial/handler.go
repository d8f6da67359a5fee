// Package commercial 广告生成管线的 HTTP 处理器。
package commercial

import (
	"admaker/internal/connector"
	"admaker/internal/service"
)

// Handler 广告生成处理器
// 所有管线相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	pipeline *service.PipelineService
	compose  *service.ComposeService
	narrator *connector.Narrator
	catalog  *connector.VoiceCatalog
}

// NewHandler 创建广告生成处理器
func NewHandler(
	pipeline *service.PipelineService,
	compose *service.ComposeService,
	narrator *connector.Narrator,
	catalog *connector.VoiceCatalog,
) *Handler {
	return &Handler{
		pipeline: pipeline,
		compose:  compose,
		narrator: narrator,
		catalog:  catalog,
	}
}
