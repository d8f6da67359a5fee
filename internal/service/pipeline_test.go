package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/assets"
	"admaker/internal/config"
	"admaker/internal/connector"
	"admaker/internal/model"
	"admaker/internal/pkg/ffmpeg"
)

func newMockPipeline(t *testing.T) *PipelineService {
	pipe := testPipelineConfig()
	store := assets.NewMemStore()

	script := connector.NewScriptGenerator(context.Background(), &config.AIConfig{}, pipe)
	video := connector.NewVideoGenerator(&config.VideoConfig{}, store, ffmpeg.NewClient())
	sfx := connector.NewSFXGenerator(&config.AudioConfig{}, pipe, store)

	return NewPipelineService(script, video, sfx, pipe)
}

func TestPipelineService_GenerateScript(t *testing.T) {
	Convey("脚本生成经由流水线", t, func() {
		svc := newMockPipeline(t)

		script := svc.GenerateScript(context.Background(), &model.GenerateScriptRequest{
			ProductBrief: model.ProductBrief{ProductName: "CloudSync"},
		})

		So(len(script.Scenes), ShouldEqual, 4)
		So(script.Origin, ShouldEqual, model.OriginMock)
	})
}

func TestPipelineService_GenerateAllVideos(t *testing.T) {
	Convey("批量视频生成场景数不缺位", t, func() {
		svc := newMockPipeline(t)

		scenes := []model.Scene{
			{Number: 1, VideoPrompt: "opening shot"},
			{Number: 2, VideoPrompt: ""}, // 空提示词会报错，批量模式降级为占位
			{Number: 3, VideoPrompt: "closing shot"},
		}

		videos := svc.GenerateAllVideos(context.Background(), scenes)

		So(len(videos), ShouldEqual, 3)
		for i, video := range videos {
			So(video.SceneNumber, ShouldEqual, i+1)
			So(video.Origin, ShouldEqual, model.OriginMock)
			So(video.VideoURL, ShouldEqual, fmt.Sprintf("/api/placeholder-video/%d", i+1))
		}

		Convey("失败场景标注错误原因", func() {
			So(videos[1].Status, ShouldEqual, "error")
			So(videos[1].Error, ShouldNotBeEmpty)
		})
	})
}

func TestPipelineService_GenerateAllVideosAuthFailureIsolation(t *testing.T) {
	Convey("单场景上游 401 只降级该场景", t, func() {
		// 模拟队列API：第3幕的提示词返回 401，其余场景完整走完排队-轮询-取结果-下载
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost:
				body, _ := io.ReadAll(r.Body)
				if strings.Contains(string(body), "forbidden scene") {
					w.WriteHeader(http.StatusUnauthorized)
					fmt.Fprint(w, `{"detail":"invalid api key"}`)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"request_id":"r1","status_url":"%s/status","response_url":"%s/result"}`, srv.URL, srv.URL)
			case strings.HasSuffix(r.URL.Path, "/status"):
				fmt.Fprint(w, `{"status":"COMPLETED"}`)
			case strings.HasSuffix(r.URL.Path, "/result"):
				fmt.Fprintf(w, `{"video":{"url":"%s/clip.mp4"}}`, srv.URL)
			default:
				fmt.Fprint(w, "fake video bytes")
			}
		}))
		defer srv.Close()

		pipe := testPipelineConfig()
		store := assets.NewMemStore()
		videoCfg := &config.VideoConfig{
			APIKey:       "test-key",
			BaseURL:      srv.URL,
			Model:        "test-model",
			PollInterval: time.Millisecond,
			PollTimeout:  5 * time.Second,
		}

		script := connector.NewScriptGenerator(context.Background(), &config.AIConfig{}, pipe)
		video := connector.NewVideoGenerator(videoCfg, store, brokenMedia(t))
		sfx := connector.NewSFXGenerator(&config.AudioConfig{}, pipe, store)
		svc := NewPipelineService(script, video, sfx, pipe)

		scenes := []model.Scene{
			{Number: 1, VideoPrompt: "opening shot"},
			{Number: 2, VideoPrompt: "product reveal"},
			{Number: 3, VideoPrompt: "forbidden scene"},
			{Number: 4, VideoPrompt: "closing shot"},
		}

		videos := svc.GenerateAllVideos(context.Background(), scenes)

		Convey("场景数不缺位", func() {
			So(len(videos), ShouldEqual, 4)
		})

		Convey("认证失败的场景降级为占位", func() {
			So(videos[2].SceneNumber, ShouldEqual, 3)
			So(videos[2].Status, ShouldEqual, "error")
			So(videos[2].Origin, ShouldEqual, model.OriginMock)
			So(videos[2].VideoURL, ShouldEqual, "/api/placeholder-video/3")
			So(videos[2].Error, ShouldContainSubstring, "auth")
		})

		Convey("其余场景不受影响", func() {
			for _, i := range []int{0, 1, 3} {
				So(videos[i].Origin, ShouldEqual, model.OriginReal)
				So(videos[i].Status, ShouldEqual, "success")
				So(videos[i].VideoURL, ShouldStartWith, "/api/videos/")
				So(videos[i].Error, ShouldBeEmpty)
			}
		})
	})
}

func TestPipelineService_GenerateSceneEffects(t *testing.T) {
	Convey("音效时长缺省取场景时长", t, func() {
		svc := newMockPipeline(t)

		options, err := svc.GenerateSceneEffects(context.Background(), "rain on window", 0, 1)
		So(err, ShouldBeNil)
		So(len(options), ShouldEqual, 4)
	})
}
