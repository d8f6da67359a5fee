package commercial

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"admaker/internal/pkg/wav"
)

// sampleVideoURL 占位视频，和 mock 成片一样指向公开示例视频
const sampleVideoURL = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"

// MockSFX 占位音效
// @Summary      占位音效
// @Description  按文件名里的候选位序号生成对应频率的提示音，保证 mock 音效URL可试听。
// @Tags         占位资源
// @Produce      audio/wav
// @Param        name  path  string  true  "文件名，形如 1-2.mp3"
// @Success      200  {file}  binary  "WAV 音频"
// @Router       /api/mock-sfx/{name} [get]
func (h *Handler) MockSFX(c *gin.Context) {
	name := c.Param("name")

	audio := wav.Tone(wav.VariantFrequency(variantOf(name)), 0.5)

	c.Header("Content-Length", strconv.Itoa(len(audio)))
	c.Data(http.StatusOK, "audio/wav", audio)
}

// MockVoiceover 占位旁白
// @Summary      占位旁白
// @Description  生成 30 秒模拟人声音频，用于旁白合成不可用时的试听。
// @Tags         占位资源
// @Produce      audio/wav
// @Param        name  path  string  true  "文件名"
// @Success      200  {file}  binary  "WAV 音频"
// @Router       /api/mock-voiceover/{name} [get]
func (h *Handler) MockVoiceover(c *gin.Context) {
	name := c.Param("name")

	audio := wav.VoiceTone(30)

	c.Header("Content-Length", strconv.Itoa(len(audio)))
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	c.Data(http.StatusOK, "audio/wav", audio)
}

// PlaceholderVideo 占位视频
// @Summary      占位视频
// @Description  场景视频生成失败或未配置时的占位视频，重定向到公开示例视频。
// @Tags         占位资源
// @Param        scene  path  int  true  "场景序号"
// @Success      302
// @Router       /api/placeholder-video/{scene} [get]
func (h *Handler) PlaceholderVideo(c *gin.Context) {
	c.Redirect(http.StatusFound, sampleVideoURL)
}

// PlaceholderThumbnail 占位缩略图
// @Summary      占位缩略图
// @Description  返回标注场景序号的 SVG 占位图。
// @Tags         占位资源
// @Produce      image/svg+xml
// @Param        scene  path  int  true  "场景序号"
// @Success      200  {file}  binary  "SVG 图片"
// @Router       /api/placeholder-thumbnail/{scene} [get]
func (h *Handler) PlaceholderThumbnail(c *gin.Context) {
	scene := c.Param("scene")

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="320" height="180">`+
		`<rect width="100%%" height="100%%" fill="#1f2937"/>`+
		`<text x="50%%" y="50%%" fill="#9ca3af" font-family="sans-serif" font-size="24" `+
		`text-anchor="middle" dominant-baseline="middle">Scene %s</text></svg>`, scene)

	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// variantOf 从 mock 音效文件名（形如 2-3.mp3）里取候选位序号
func variantOf(name string) int {
	base := strings.TrimSuffix(name, ".mp3")
	parts := strings.Split(base, "-")
	if len(parts) < 2 {
		return 1
	}
	variant, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || variant < 1 {
		return 1
	}
	return variant
}
