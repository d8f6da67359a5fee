package commercial

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/model"
)

// GenerateScript 生成广告脚本
// @Summary      生成广告脚本
// @Description  根据产品简介生成分场景广告脚本。type 为 voiceover 时基于已有场景生成旁白文案。AI 服务不可用时返回模板脚本并在 warning 中标注。
// @Tags         脚本
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateScriptRequest  true  "产品简介"
// @Success      200      {object}  map[string]interface{}  "脚本内容"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Router       /api/generate-script [post]
func (h *Handler) GenerateScript(c *gin.Context) {
	var req model.GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if req.Type == "voiceover" {
		text, origin := h.pipeline.GenerateNarrationScript(ctx, &req)
		c.JSON(http.StatusOK, gin.H{
			"script": text,
			"origin": origin,
		})
		return
	}

	script := h.pipeline.GenerateScript(ctx, &req)

	resp := gin.H{
		"script": script.Scenes,
		"origin": script.Origin,
	}
	if script.Reason != "" {
		resp["warning"] = script.Reason
	}
	c.JSON(http.StatusOK, resp)
}
