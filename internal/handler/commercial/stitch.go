package commercial

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/model"
)

// StitchVideos 场景混音
// @Summary      场景混音
// @Description  逐场景把选中的音效混入视频。单个场景失败只降级该场景，ffmpeg 缺失时整批返回 mock 产物。
// @Tags         合成
// @Accept       json
// @Produce      json
// @Param        request  body      model.StitchRequest  true  "视频和音效选择"
// @Success      200      {object}  map[string]interface{}  "混音结果"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Router       /api/stitch-videos [post]
func (h *Handler) StitchVideos(c *gin.Context) {
	var req model.StitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	stitched, warning := h.compose.StitchAll(c.Request.Context(), &req)

	resp := gin.H{
		"stitchedVideos": stitched,
	}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}
