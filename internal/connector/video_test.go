package connector

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/assets"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
	"admaker/internal/pkg/ffmpeg"
)

func TestExtractVideoURL(t *testing.T) {
	Convey("extractVideoURL 按优先级尝试各种返回结构", t, func() {
		Convey("嵌套 video.url", func() {
			url, ok := extractVideoURL([]byte(`{"video":{"url":"https://cdn.example.com/a.mp4"}}`))
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://cdn.example.com/a.mp4")
		})

		Convey("顶层 video_url", func() {
			url, ok := extractVideoURL([]byte(`{"video_url":"https://cdn.example.com/b.mp4"}`))
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://cdn.example.com/b.mp4")
		})

		Convey("顶层 url", func() {
			url, ok := extractVideoURL([]byte(`{"url":"https://cdn.example.com/c.mp4"}`))
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://cdn.example.com/c.mp4")
		})

		Convey("data 包装层优先", func() {
			url, ok := extractVideoURL([]byte(`{"data":{"video":{"url":"https://cdn.example.com/d.mp4"}},"url":"https://cdn.example.com/other.mp4"}`))
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://cdn.example.com/d.mp4")
		})

		Convey("纯字符串响应", func() {
			url, ok := extractVideoURL([]byte(`"https://cdn.example.com/e.mp4"`))
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://cdn.example.com/e.mp4")
		})

		Convey("没有视频URL", func() {
			_, ok := extractVideoURL([]byte(`{"status":"COMPLETED"}`))
			So(ok, ShouldBeFalse)

			_, ok = extractVideoURL([]byte(`not json at all`))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("classify 按状态码归类上游失败", t, func() {
		So(classify(401), ShouldEqual, FailureAuth)
		So(classify(403), ShouldEqual, FailureAuth)
		So(classify(429), ShouldEqual, FailureRateLimit)
		So(classify(400), ShouldEqual, FailureBadRequest)
		So(classify(422), ShouldEqual, FailureBadRequest)
		So(classify(500), ShouldEqual, FailureUnknown)
		So(classify(503), ShouldEqual, FailureUnknown)
	})
}

func TestNewRemoteError(t *testing.T) {
	Convey("newRemoteError 截断超长响应体", t, func() {
		long := make([]byte, 1024)
		for i := range long {
			long[i] = 'x'
		}

		err := newRemoteError("fal.ai", 500, "a prompt", string(long))
		So(len(err.Body), ShouldEqual, 512)
		So(err.Service, ShouldEqual, "fal.ai")
		So(err.Kind, ShouldEqual, FailureUnknown)
		So(err.Error(), ShouldContainSubstring, "fal.ai")
	})
}

func TestVideoGenerator_NoAPIKey(t *testing.T) {
	Convey("未配置密钥时视频生成返回占位结果", t, func() {
		gen := NewVideoGenerator(&config.VideoConfig{}, assets.NewMemStore(), ffmpeg.NewClient())

		Convey("空提示词报错", func() {
			_, err := gen.Generate(context.Background(), "  ", 1)
			So(err, ShouldEqual, ErrEmptyPrompt)
		})

		Convey("占位结果带场景序号", func() {
			result, err := gen.Generate(context.Background(), "a city at night", 3)
			So(err, ShouldBeNil)
			So(result.Origin, ShouldEqual, appmodel.OriginMock)
			So(result.Status, ShouldEqual, "mock")
			So(result.SceneNumber, ShouldEqual, 3)
			So(result.VideoURL, ShouldEqual, "/api/placeholder-video/3")
			So(result.Thumbnail, ShouldEqual, "/api/placeholder-thumbnail/3")
		})
	})
}
