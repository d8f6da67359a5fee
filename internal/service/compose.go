package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"admaker/internal/assets"
	"admaker/internal/config"
	"admaker/internal/model"
	"admaker/internal/pkg/ffmpeg"
	"admaker/internal/pkg/id"
)

// ErrNoSceneVideos 成片合成时一个可用的场景视频都没有
var ErrNoSceneVideos = errors.New("no valid video files found")

// ComposeService 合成服务
// 负责场景混音和成片拼接，整条链路在 ffmpeg 缺失或失败时降级为 mock 产物
type ComposeService struct {
	media      *ffmpeg.Client
	store      assets.Store
	pipe       *config.PipelineConfig
	httpClient *http.Client
}

// NewComposeService 创建合成服务
func NewComposeService(media *ffmpeg.Client, store assets.Store, pipe *config.PipelineConfig) *ComposeService {
	return &ComposeService{
		media: media,
		store: store,
		pipe:  pipe,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// StitchAll 逐场景把选中音效混入视频
// 返回的场景数恒等于输入场景数，warning 非空表示整批走了降级
func (s *ComposeService) StitchAll(ctx context.Context, req *model.StitchRequest) ([]model.StitchedScene, string) {
	log.Info().Int("videos", len(req.Videos)).Msg("开始场景混音")

	if !s.media.Installed(ctx) {
		log.Warn().Msg("ffmpeg not installed, returning mock stitched videos")
		stitched := make([]model.StitchedScene, 0, len(req.Videos))
		for i, video := range req.Videos {
			sceneNumber := video.SceneNumber
			if sceneNumber == 0 {
				sceneNumber = i + 1
			}
			scene := model.StitchedScene{
				SceneNumber: sceneNumber,
				VideoURL:    video.VideoURL,
				CombinedURL: s.store.URL(assets.KindStitched, fmt.Sprintf("scene-%d.mp4", i+1)),
			}
			if sel := selectionFor(req.SoundEffects, sceneNumber, i); sel != nil {
				scene.SFXURL = sel.URL
			}
			stitched = append(stitched, scene)
		}
		return stitched, "Using mock data - FFmpeg not installed"
	}

	stitched := make([]model.StitchedScene, 0, len(req.Videos))
	for i, video := range req.Videos {
		sceneNumber := video.SceneNumber
		if sceneNumber == 0 {
			sceneNumber = i + 1
		}
		stitched = append(stitched, s.stitchScene(ctx, video, selectionFor(req.SoundEffects, sceneNumber, i), sceneNumber))
	}
	return stitched, ""
}

// selectionFor 按场景序号取音效选择，音视频配对不受列表顺序影响
// 没给序号的条目退回下标对齐
func selectionFor(selections []model.SceneSelection, sceneNumber, idx int) *model.SelectedSoundEffect {
	for _, sel := range selections {
		if sel.SceneNumber != 0 && sel.SceneNumber == sceneNumber {
			return sel.SelectedSFX
		}
	}
	if idx < len(selections) && selections[idx].SceneNumber == 0 {
		return selections[idx].SelectedSFX
	}
	return nil
}

// stitchScene 单场景混音
// 任何一步失败都退回原视频URL，并在 Error 里标注原因
func (s *ComposeService) stitchScene(ctx context.Context, video model.GeneratedVideo, sel *model.SelectedSoundEffect, sceneNumber int) model.StitchedScene {
	out := model.StitchedScene{
		SceneNumber: sceneNumber,
		VideoURL:    video.VideoURL,
	}
	if sel != nil {
		out.SFXURL = sel.URL
	}

	videoPath, cleanup, err := s.localInput(ctx, video.VideoURL, "stitch_video_")
	if err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Str("url", video.VideoURL).Msg("stitch input unavailable")
		out.CombinedURL = video.VideoURL
		out.Error = "Video file not found"
		return out
	}
	defer cleanup()

	stitchedName := id.New() + ".mp4"

	// mock 音效或未选音效：直接把视频收为合成产物，不做混音
	if sel == nil || sel.URL == "" || sel.Origin == model.OriginMock || strings.HasPrefix(sel.URL, "/api/mock-sfx/") {
		asset, err := s.copyInto(ctx, assets.KindStitched, stitchedName, videoPath)
		if err != nil {
			out.CombinedURL = video.VideoURL
			out.Error = err.Error()
			return out
		}
		out.CombinedURL = asset.URL
		return out
	}

	sfxPath, sfxCleanup, err := s.localInput(ctx, sel.URL, "stitch_sfx_")
	if err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Msg("sfx unavailable, stitching without audio mix")
		asset, copyErr := s.copyInto(ctx, assets.KindStitched, stitchedName, videoPath)
		if copyErr != nil {
			out.CombinedURL = video.VideoURL
			out.Error = copyErr.Error()
			return out
		}
		out.CombinedURL = asset.URL
		out.Error = "Sound effect file not found"
		return out
	}
	defer sfxCleanup()

	duration := s.pipe.SceneDuration
	if info, err := s.media.GetVideoInfo(ctx, videoPath); err == nil && info.Duration > 0 {
		duration = info.Duration
	}

	hasAudio, err := s.media.HasAudioStream(ctx, videoPath)
	if err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Msg("audio stream probe failed, assuming none")
		hasAudio = false
	}

	tmpOut := filepath.Join(os.TempDir(), "stitched_"+stitchedName)
	err = s.media.MixAudio(ctx, videoPath, sfxPath, tmpOut, ffmpeg.MixOptions{
		BaseHasAudio: hasAudio,
		BaseGain:     1.0,
		OverlayGain:  s.pipe.SFXGain,
		LoopOverlay:  true,
		Duration:     duration,
	})
	if err != nil {
		log.Warn().Err(err).Int("scene", sceneNumber).Msg("audio mix failed, falling back to original video")
		os.Remove(tmpOut)
		out.CombinedURL = video.VideoURL
		out.Error = err.Error()
		return out
	}

	asset, err := s.store.Add(ctx, assets.KindStitched, stitchedName, tmpOut)
	if err != nil {
		os.Remove(tmpOut)
		out.CombinedURL = video.VideoURL
		out.Error = err.Error()
		return out
	}

	log.Info().Int("scene", sceneNumber).Str("output", asset.URL).Msg("场景混音完成")
	out.CombinedURL = asset.URL
	out.SFXMixed = true
	return out
}

// Finalize 拼接全部场景并叠加旁白，产出最终成片
// 一个可用输入都没有是硬错误；其余失败降级为 mock 成片
func (s *ComposeService) Finalize(ctx context.Context, req *model.CreateFinalRequest) (*model.FinalArtifact, error) {
	log.Info().
		Str("product", req.ProductName).
		Int("scenes", len(req.StitchedVideos)).
		Bool("voiceover", req.VoiceoverURL != "").
		Msg("开始合成最终成片")

	if len(req.StitchedVideos) == 0 {
		return nil, ErrNoSceneVideos
	}

	if !s.media.Installed(ctx) {
		log.Warn().Msg("ffmpeg not installed, returning mock final video")
		return s.mockArtifact(req.ProductName, "Using mock data - FFmpeg not installed"), nil
	}

	videoPaths, cleanup, err := s.collectScenePaths(ctx, req.StitchedVideos)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	finalName := id.New() + ".mp4"
	concatTmp := filepath.Join(os.TempDir(), "concat_"+finalName)

	if err := s.media.ConcatVideos(ctx, videoPaths, concatTmp); err != nil {
		os.Remove(concatTmp)
		log.Warn().Err(err).Msg("concat failed, returning mock final video")
		return s.mockArtifact(req.ProductName, err.Error()), nil
	}

	finalTmp, err := s.overlayNarration(ctx, concatTmp, req.VoiceoverURL, finalName)
	if err != nil {
		// 旁白叠加失败不拦成片，拼接结果直接作为成片
		log.Warn().Err(err).Msg("narration overlay failed, using concat output as final")
		finalTmp = concatTmp
	}
	if finalTmp != concatTmp {
		defer os.Remove(concatTmp)
	}

	asset, err := s.store.Add(ctx, assets.KindFinal, finalName, finalTmp)
	if err != nil {
		os.Remove(finalTmp)
		log.Warn().Err(err).Msg("final video store failed, returning mock")
		return s.mockArtifact(req.ProductName, err.Error()), nil
	}

	artifact := &model.FinalArtifact{
		VideoURL:    asset.URL,
		ProductName: req.ProductName,
		Origin:      model.OriginReal,
	}
	s.probeArtifact(ctx, asset, artifact)

	log.Info().
		Str("video", artifact.VideoURL).
		Int("duration", artifact.Duration).
		Str("resolution", artifact.Resolution).
		Str("size", artifact.FileSize).
		Msg("最终成片合成完成")
	return artifact, nil
}

// collectScenePaths 按场景序号顺序解析每个场景的本地视频文件
// 拼接顺序以序号为准而非请求内的排列；优先合成产物，退回原视频
func (s *ComposeService) collectScenePaths(ctx context.Context, scenes []model.StitchedScene) ([]string, func(), error) {
	var paths []string
	var cleanups []func()

	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	ordered := make([]model.StitchedScene, len(scenes))
	copy(ordered, scenes)
	for i := range ordered {
		if ordered[i].SceneNumber == 0 {
			ordered[i].SceneNumber = i + 1
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SceneNumber < ordered[j].SceneNumber
	})

	for _, scene := range ordered {
		path, fn, err := s.localInput(ctx, scene.CombinedURL, "final_scene_")
		if err != nil && scene.VideoURL != "" {
			path, fn, err = s.localInput(ctx, scene.VideoURL, "final_scene_")
		}
		if err != nil {
			log.Warn().Int("scene", scene.SceneNumber).Msg("scene video unavailable, skipping")
			continue
		}
		paths = append(paths, path)
		cleanups = append(cleanups, fn)
	}

	if len(paths) == 0 {
		return nil, cleanup, ErrNoSceneVideos
	}
	return paths, cleanup, nil
}

// overlayNarration 把旁白叠加到拼接结果上，返回叠加后的临时文件
// 旁白缺失或为 mock 时直接返回拼接结果
func (s *ComposeService) overlayNarration(ctx context.Context, concatTmp, voiceoverURL, finalName string) (string, error) {
	if voiceoverURL == "" || strings.HasPrefix(voiceoverURL, "/api/mock-voiceover/") {
		return concatTmp, nil
	}

	voPath, voCleanup, err := s.localInput(ctx, voiceoverURL, "final_vo_")
	if err != nil {
		return concatTmp, fmt.Errorf("voiceover unavailable: %w", err)
	}
	defer voCleanup()

	// 旁白比视频长会被 -shortest 截断，只告警不拦
	if voDuration, err := s.media.GetAudioDuration(ctx, voPath); err == nil {
		if info, err := s.media.GetVideoInfo(ctx, concatTmp); err == nil && voDuration > info.Duration {
			log.Warn().
				Float64("voiceover", voDuration).
				Float64("video", info.Duration).
				Msg("voiceover longer than video, tail will be cut")
		}
	}

	hasAudio, err := s.media.HasAudioStream(ctx, concatTmp)
	if err != nil {
		hasAudio = false
	}

	mixedTmp := filepath.Join(os.TempDir(), "final_"+finalName)

	if hasAudio {
		// 压低场景音，旁白全音量混入
		err = s.media.MixAudio(ctx, concatTmp, voPath, mixedTmp, ffmpeg.MixOptions{
			BaseHasAudio: true,
			BaseGain:     s.pipe.NarrationBedGain,
			OverlayGain:  s.pipe.NarrationGain,
		})
	} else {
		err = s.media.AttachAudio(ctx, concatTmp, voPath, mixedTmp)
	}
	if err != nil {
		os.Remove(mixedTmp)
		return concatTmp, err
	}
	return mixedTmp, nil
}

// probeArtifact 探测成片的时长、分辨率和文件大小
func (s *ComposeService) probeArtifact(ctx context.Context, asset *assets.Asset, artifact *model.FinalArtifact) {
	path, ok := s.store.Resolve(asset.Kind, asset.Name)
	if !ok {
		return
	}

	if info, err := s.media.GetVideoInfo(ctx, path); err == nil {
		artifact.Duration = int(math.Round(info.Duration))
		if info.Width > 0 && info.Height > 0 {
			artifact.Resolution = fmt.Sprintf("%dx%d", info.Width, info.Height)
		}
	}

	if stat, err := os.Stat(path); err == nil {
		artifact.FileSize = fmt.Sprintf("%.2fMB", float64(stat.Size())/(1024*1024))
	}
}

// mockArtifact 成片降级产物
func (s *ComposeService) mockArtifact(productName, warning string) *model.FinalArtifact {
	return &model.FinalArtifact{
		VideoURL:    s.store.URL(assets.KindFinal, "commercial.mp4"),
		Duration:    int(s.pipe.SceneDuration * float64(s.pipe.SceneCount)),
		Resolution:  "1920x1080",
		FileSize:    "25MB",
		ProductName: productName,
		Origin:      model.OriginMock,
		Warning:     warning,
	}
}

// localInput 把一个产物URL解析成本地文件路径
// 本地存储命中直接用库内文件；http(s) URL 下载到临时文件，由 cleanup 清理
func (s *ComposeService) localInput(ctx context.Context, rawURL, tmpPrefix string) (string, func(), error) {
	noop := func() {}

	if rawURL == "" {
		return "", noop, fmt.Errorf("empty asset url")
	}

	if kind, name, ok := s.store.ResolveURL(rawURL); ok {
		if path, ok := s.store.Resolve(kind, name); ok {
			if _, err := os.Stat(path); err == nil {
				return path, noop, nil
			}
		}
		return "", noop, fmt.Errorf("asset not found: %s", rawURL)
	}

	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		tmpPath := filepath.Join(os.TempDir(), tmpPrefix+id.New()+filepath.Ext(rawURL))
		if err := assets.FetchToFile(ctx, s.httpClient, rawURL, tmpPath); err != nil {
			return "", noop, fmt.Errorf("download asset: %w", err)
		}
		return tmpPath, func() { os.Remove(tmpPath) }, nil
	}

	return "", noop, fmt.Errorf("unresolvable asset url: %s", rawURL)
}

// copyInto 把本地文件复制进产物存储（源文件保留）
func (s *ComposeService) copyInto(ctx context.Context, kind assets.Kind, name, srcPath string) (*assets.Asset, error) {
	file, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	return s.store.Put(ctx, kind, name, file)
}
