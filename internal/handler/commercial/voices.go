package commercial

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListVoices 查询可用音色
// @Summary      查询可用音色
// @Description  返回可用于旁白的音色列表，上游不可用时返回内置音色。
// @Tags         旁白
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "音色列表"
// @Router       /api/voices [get]
func (h *Handler) ListVoices(c *gin.Context) {
	voices := h.catalog.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"voices": voices,
	})
}
