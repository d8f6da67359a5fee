package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/assets"
	"admaker/internal/config"
	"admaker/internal/model"
	"admaker/internal/pkg/ffmpeg"
)

func testPipelineConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		SceneCount:       4,
		SceneDuration:    7.5,
		SFXVariants:      4,
		SFXGain:          0.3,
		NarrationGain:    1.0,
		NarrationBedGain: 0.3,
		WordsPerMinute:   150,
		VoiceLimit:       8,
	}
}

// brokenMedia 指向不存在的可执行文件，强制走 ffmpeg 缺失分支
func brokenMedia(t *testing.T) *ffmpeg.Client {
	t.Setenv("FFMPEG_PATH", "/nonexistent/ffmpeg")
	t.Setenv("FFPROBE_PATH", "/nonexistent/ffprobe")
	return ffmpeg.NewClient()
}

func TestComposeService_StitchAllWithoutFFmpeg(t *testing.T) {
	Convey("ffmpeg 缺失时混音整批降级", t, func() {
		svc := NewComposeService(brokenMedia(t), assets.NewMemStore(), testPipelineConfig())

		req := &model.StitchRequest{
			Videos: []model.GeneratedVideo{
				{SceneNumber: 1, VideoURL: "/api/videos/a.mp4"},
				{SceneNumber: 2, VideoURL: "/api/videos/b.mp4"},
			},
			// 音效选择故意倒序给出，配对必须按场景序号
			SoundEffects: []model.SceneSelection{
				{SceneNumber: 2, SelectedSFX: &model.SelectedSoundEffect{URL: "/api/sfx/y.mp3"}},
				{SceneNumber: 1, SelectedSFX: &model.SelectedSoundEffect{URL: "/api/sfx/x.mp3"}},
			},
		}

		stitched, warning := svc.StitchAll(context.Background(), req)

		So(warning, ShouldContainSubstring, "FFmpeg not installed")
		So(len(stitched), ShouldEqual, 2)
		So(stitched[0].SceneNumber, ShouldEqual, 1)
		So(stitched[0].VideoURL, ShouldEqual, "/api/videos/a.mp4")
		So(stitched[0].SFXURL, ShouldEqual, "/api/sfx/x.mp3")
		So(stitched[0].CombinedURL, ShouldEqual, "/api/stitched/scene-1.mp4")
		So(stitched[1].SFXURL, ShouldEqual, "/api/sfx/y.mp3")
		So(stitched[1].CombinedURL, ShouldEqual, "/api/stitched/scene-2.mp4")
	})
}

func TestComposeService_StitchSceneMissingVideo(t *testing.T) {
	Convey("视频文件不存在时场景退回原URL", t, func() {
		svc := NewComposeService(brokenMedia(t), assets.NewMemStore(), testPipelineConfig())

		scene := svc.stitchScene(context.Background(),
			model.GeneratedVideo{SceneNumber: 1, VideoURL: "/api/placeholder-video/1"},
			&model.SelectedSoundEffect{URL: "/api/sfx/x.mp3"}, 1)

		So(scene.CombinedURL, ShouldEqual, "/api/placeholder-video/1")
		So(scene.Error, ShouldEqual, "Video file not found")
		So(scene.SFXMixed, ShouldBeFalse)
	})
}

func TestComposeService_FinalizeWithoutFFmpeg(t *testing.T) {
	Convey("ffmpeg 缺失时成片降级为 mock", t, func() {
		svc := NewComposeService(brokenMedia(t), assets.NewMemStore(), testPipelineConfig())

		artifact, err := svc.Finalize(context.Background(), &model.CreateFinalRequest{
			StitchedVideos: []model.StitchedScene{{SceneNumber: 1, CombinedURL: "/api/stitched/a.mp4"}},
			ProductName:    "CloudSync",
		})

		So(err, ShouldBeNil)
		So(artifact.Origin, ShouldEqual, model.OriginMock)
		So(artifact.VideoURL, ShouldEqual, "/api/final/commercial.mp4")
		So(artifact.Duration, ShouldEqual, 30)
		So(artifact.Resolution, ShouldEqual, "1920x1080")
		So(artifact.FileSize, ShouldEqual, "25MB")
		So(artifact.ProductName, ShouldEqual, "CloudSync")
		So(artifact.Warning, ShouldContainSubstring, "FFmpeg not installed")
	})
}

func TestComposeService_LocalInput(t *testing.T) {
	Convey("localInput 解析产物URL", t, func() {
		store := assets.NewMemStore()
		svc := NewComposeService(brokenMedia(t), store, testPipelineConfig())

		Convey("空URL报错", func() {
			_, _, err := svc.localInput(context.Background(), "", "t_")
			So(err, ShouldNotBeNil)
		})

		Convey("非产物路径报错", func() {
			_, _, err := svc.localInput(context.Background(), "/api/placeholder-video/1", "t_")
			So(err, ShouldNotBeNil)
		})

		Convey("内存存储产物没有本地路径", func() {
			// MemStore 能反解URL但给不出本地文件
			_, _, err := svc.localInput(context.Background(), "/api/videos/a.mp4", "t_")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestComposeService_FinalizeNoInputs(t *testing.T) {
	Convey("没有任何场景时成片直接报错", t, func() {
		svc := NewComposeService(brokenMedia(t), assets.NewMemStore(), testPipelineConfig())

		artifact, err := svc.Finalize(context.Background(), &model.CreateFinalRequest{
			ProductName: "CloudSync",
		})

		So(artifact, ShouldBeNil)
		So(errors.Is(err, ErrNoSceneVideos), ShouldBeTrue)
	})
}

func TestComposeService_CollectScenePaths(t *testing.T) {
	ctx := context.Background()

	Convey("collectScenePaths 按场景序号取文件", t, func() {
		store, err := assets.NewDirStore(t.TempDir(), "/api")
		So(err, ShouldBeNil)
		svc := NewComposeService(brokenMedia(t), store, testPipelineConfig())

		s1, err := store.Put(ctx, assets.KindStitched, "s1.mp4", strings.NewReader("one"))
		So(err, ShouldBeNil)
		s2, err := store.Put(ctx, assets.KindStitched, "s2.mp4", strings.NewReader("two"))
		So(err, ShouldBeNil)

		Convey("请求内乱序也按序号拼接", func() {
			paths, cleanup, err := svc.collectScenePaths(ctx, []model.StitchedScene{
				{SceneNumber: 2, CombinedURL: s2.URL},
				{SceneNumber: 1, CombinedURL: s1.URL},
			})
			defer cleanup()

			So(err, ShouldBeNil)
			So(len(paths), ShouldEqual, 2)
			So(paths[0], ShouldEndWith, "s1.mp4")
			So(paths[1], ShouldEndWith, "s2.mp4")
		})

		Convey("一个都解析不出来算硬错误", func() {
			_, cleanup, err := svc.collectScenePaths(ctx, []model.StitchedScene{
				{SceneNumber: 1, CombinedURL: "/api/stitched/missing.mp4"},
			})
			defer cleanup()

			So(errors.Is(err, ErrNoSceneVideos), ShouldBeTrue)
		})
	})
}

func TestSelectionFor(t *testing.T) {
	Convey("selectionFor 按场景序号配对音效", t, func() {
		selections := []model.SceneSelection{
			{SceneNumber: 2, SelectedSFX: &model.SelectedSoundEffect{URL: "/api/sfx/b.mp3"}},
			{SceneNumber: 1, SelectedSFX: &model.SelectedSoundEffect{URL: "/api/sfx/a.mp3"}},
		}

		Convey("列表乱序不影响配对", func() {
			So(selectionFor(selections, 1, 0).URL, ShouldEqual, "/api/sfx/a.mp3")
			So(selectionFor(selections, 2, 1).URL, ShouldEqual, "/api/sfx/b.mp3")
		})

		Convey("没有对应序号返回 nil", func() {
			So(selectionFor(selections, 3, 5), ShouldBeNil)
		})

		Convey("没给序号的条目退回下标对齐", func() {
			unnumbered := []model.SceneSelection{
				{SelectedSFX: &model.SelectedSoundEffect{URL: "/api/sfx/x.mp3"}},
			}
			So(selectionFor(unnumbered, 1, 0).URL, ShouldEqual, "/api/sfx/x.mp3")
			So(selectionFor(unnumbered, 2, 1), ShouldBeNil)
		})
	})
}
