package commercial

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/connector"
	"admaker/internal/model"
)

// GenerateVideo 生成场景视频
// @Summary      生成场景视频
// @Description  为单个场景生成视频。任务在服务端排队串行执行，生成服务不可用时返回占位视频。
// @Tags         视频
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateVideoRequest  true  "场景提示词"
// @Success      200      {object}  model.GeneratedVideo  "生成结果"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      401      {object}  ErrorResponse  "上游密钥无效"
// @Failure      429      {object}  ErrorResponse  "上游限流"
// @Router       /api/generate-video [post]
func (h *Handler) GenerateVideo(c *gin.Context) {
	var req model.GenerateVideoRequest
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

	result, err := h.pipeline.GenerateSceneVideo(c.Request.Context(), req.Prompt, req.SceneNumber)
	if err != nil {
		if errors.Is(err, connector.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: err.Error(),
			})
			return
		}
		if writeRemoteError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
