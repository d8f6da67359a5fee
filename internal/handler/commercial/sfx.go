package commercial

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/connector"
	"admaker/internal/model"
)

// GenerateSFX 生成场景音效候选
// @Summary      生成场景音效
// @Description  为单个场景并发生成多个情绪变体的音效候选，失败的候选位用占位音效补齐。
// @Tags         音效
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateSFXRequest  true  "音效提示词"
// @Success      200      {object}  map[string]interface{}  "音效候选列表"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Router       /api/generate-sfx [post]
func (h *Handler) GenerateSFX(c *gin.Context) {
	var req model.GenerateSFXRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if req.SceneNumber == 0 {
		req.SceneNumber = 1
	}

	options, err := h.pipeline.GenerateSceneEffects(c.Request.Context(), req.Prompt, req.Duration, req.SceneNumber)
	if err != nil {
		if errors.Is(err, connector.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "Sound effect prompt is required",
				Detail:  err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sceneNumber":  req.SceneNumber,
		"soundEffects": options,
	})
}
