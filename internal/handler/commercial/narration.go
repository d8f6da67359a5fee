package commercial

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/connector"
	"admaker/internal/model"
)

// GenerateVoiceover 合成旁白音频
// @Summary      合成旁白音频
// @Description  用指定音色合成旁白，未指定时自动选择默认音色。合成服务不可用时返回占位音频。
// @Tags         旁白
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateVoiceoverRequest  true  "旁白文本和音色"
// @Success      200      {object}  model.NarrationTrack  "旁白音频"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      401      {object}  ErrorResponse  "上游密钥无效"
// @Failure      429      {object}  ErrorResponse  "上游限流"
// @Router       /api/generate-voiceover [post]
func (h *Handler) GenerateVoiceover(c *gin.Context) {
	var req model.GenerateVoiceoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	track, err := h.narrator.Generate(c.Request.Context(), req.Text, req.VoiceID, req.VoiceName)
	if err != nil {
		if errors.Is(err, connector.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "Voiceover text is required",
				Detail:  err.Error(),
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

	c.JSON(http.StatusOK, track)
}
