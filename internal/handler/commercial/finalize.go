package commercial

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/model"
	"admaker/internal/service"
)

// CreateFinalVideo 合成最终成片
// @Summary      合成最终成片
// @Description  按场景序号拼接全部场景并叠加旁白。一个可用场景都没有返回 400；ffmpeg 缺失或合成失败时返回 mock 成片并在 warning 中标注。
// @Tags         合成
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateFinalRequest  true  "场景列表和旁白"
// @Success      200      {object}  model.FinalArtifact  "最终成片"
// @Failure      400      {object}  ErrorResponse  "请求参数错误或没有可用场景"
// @Router       /api/create-final-video [post]
func (h *Handler) CreateFinalVideo(c *gin.Context) {
	var req model.CreateFinalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	artifact, err := h.compose.Finalize(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoSceneVideos) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "No video files available to combine",
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
	c.JSON(http.StatusOK, artifact)
}
