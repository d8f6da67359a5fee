package commercial

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/assets"
	"admaker/internal/config"
	"admaker/internal/connector"
	"admaker/internal/pkg/ffmpeg"
	"admaker/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	pipe := &config.PipelineConfig{
		SceneCount:       4,
		SceneDuration:    7.5,
		SFXVariants:      4,
		SFXGain:          0.3,
		NarrationGain:    1.0,
		NarrationBedGain: 0.3,
		WordsPerMinute:   150,
		VoiceLimit:       8,
	}
	store := assets.NewMemStore()
	media := ffmpeg.NewClient()

	script := connector.NewScriptGenerator(context.Background(), &config.AIConfig{}, pipe)
	video := connector.NewVideoGenerator(&config.VideoConfig{}, store, media)
	sfx := connector.NewSFXGenerator(&config.AudioConfig{}, pipe, store)
	catalog := connector.NewVoiceCatalog(&config.AudioConfig{}, pipe, nil, 0)
	narrator := connector.NewNarrator(&config.AudioConfig{}, pipe, store, catalog)

	hdl := NewHandler(
		service.NewPipelineService(script, video, sfx, pipe),
		service.NewComposeService(media, store, pipe),
		narrator,
		catalog,
	)

	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/generate-script", hdl.GenerateScript)
	api.POST("/generate-video", hdl.GenerateVideo)
	api.GET("/voices", hdl.ListVoices)
	api.POST("/generate-voiceover", hdl.GenerateVoiceover)
	api.POST("/create-final-video", hdl.CreateFinalVideo)
	api.GET("/mock-sfx/:name", hdl.MockSFX)
	api.GET("/mock-voiceover/:name", hdl.MockVoiceover)
	api.GET("/placeholder-video/:scene", hdl.PlaceholderVideo)
	api.GET("/placeholder-thumbnail/:scene", hdl.PlaceholderThumbnail)
	return engine
}

func TestGenerateScriptEndpoint(t *testing.T) {
	Convey("POST /api/generate-script", t, func() {
		router := newTestRouter(t)

		Convey("缺少产品名返回 400", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/generate-script",
				strings.NewReader(`{"targetAudience":"teams"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("降级脚本返回完整场景和 warning", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/generate-script",
				strings.NewReader(`{"productName":"CloudSync","targetAudience":"teams","keyMessage":"sync fast"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Script  []json.RawMessage `json:"script"`
				Origin  string            `json:"origin"`
				Warning string            `json:"warning"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(len(resp.Script), ShouldEqual, 4)
			So(resp.Origin, ShouldEqual, "mock")
			So(resp.Warning, ShouldNotBeEmpty)
		})
	})
}

func TestGenerateVideoEndpoint(t *testing.T) {
	Convey("POST /api/generate-video", t, func() {
		router := newTestRouter(t)

		Convey("空提示词返回 400", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/generate-video",
				strings.NewReader(`{"prompt":"","sceneNumber":1}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("未配置密钥返回占位结果", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/generate-video",
				strings.NewReader(`{"prompt":"a city at night","sceneNumber":2}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "/api/placeholder-video/2")
		})
	})
}

func TestCreateFinalVideoEndpoint(t *testing.T) {
	Convey("POST /api/create-final-video", t, func() {
		router := newTestRouter(t)

		Convey("没有任何场景返回 400", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/create-final-video",
				strings.NewReader(`{"productName":"CloudSync"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "No video files available to combine")
		})
	})
}

func TestVoicesEndpoint(t *testing.T) {
	Convey("GET /api/voices 返回内置音色", t, func() {
		router := newTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/voices", nil))

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, "Sarah")
		So(w.Body.String(), ShouldContainSubstring, "Michael")
	})
}

func TestMockAudioEndpoints(t *testing.T) {
	Convey("占位音频端点返回可播放的 WAV", t, func() {
		router := newTestRouter(t)

		Convey("mock 音效", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mock-sfx/1-2.mp3", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "audio/wav")
			So(w.Body.String()[:4], ShouldEqual, "RIFF")
		})

		Convey("mock 旁白", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mock-voiceover/final.mp3", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "audio/wav")
			So(w.Body.String()[:4], ShouldEqual, "RIFF")
		})

		Convey("占位视频重定向", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/placeholder-video/1", nil))

			So(w.Code, ShouldEqual, http.StatusFound)
		})

		Convey("占位缩略图带场景序号", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/placeholder-thumbnail/3", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Scene 3")
		})
	})
}

func TestVariantOf(t *testing.T) {
	Convey("variantOf 从文件名解析候选位", t, func() {
		So(variantOf("1-2.mp3"), ShouldEqual, 2)
		So(variantOf("3-4.mp3"), ShouldEqual, 4)
		So(variantOf("weird.mp3"), ShouldEqual, 1)
		So(variantOf(""), ShouldEqual, 1)
	})
}
