package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"admaker/internal/config"
	"admaker/internal/connector"
	"admaker/internal/model"
)

// PipelineService 广告片生成流水线
// 串起脚本、视频、音效三个生成阶段，场景列表在任何失败下都不缺位
type PipelineService struct {
	script *connector.ScriptGenerator
	video  *connector.VideoGenerator
	sfx    *connector.SFXGenerator
	pipe   *config.PipelineConfig

	// 视频生成走上游队列，串行化避免触发限流
	videoMu sync.Mutex
}

// NewPipelineService 创建流水线服务
func NewPipelineService(
	script *connector.ScriptGenerator,
	video *connector.VideoGenerator,
	sfx *connector.SFXGenerator,
	pipe *config.PipelineConfig,
) *PipelineService {
	return &PipelineService{
		script: script,
		video:  video,
		sfx:    sfx,
		pipe:   pipe,
	}
}

// GenerateScript 根据产品简介生成分镜脚本
func (s *PipelineService) GenerateScript(ctx context.Context, req *model.GenerateScriptRequest) *model.Script {
	log.Info().Str("product", req.ProductName).Msg("生成分镜脚本")
	return s.script.GenerateScenes(ctx, req)
}

// GenerateNarrationScript 根据产品简介和分镜生成旁白文案
func (s *PipelineService) GenerateNarrationScript(ctx context.Context, req *model.GenerateScriptRequest) (string, model.Origin) {
	log.Info().Str("product", req.ProductName).Msg("生成旁白文案")
	return s.script.GenerateNarration(ctx, req)
}

// GenerateSceneVideo 为单个场景生成视频
// 同一时刻只允许一个视频任务在跑
func (s *PipelineService) GenerateSceneVideo(ctx context.Context, prompt string, sceneNumber int) (*model.GeneratedVideo, error) {
	s.videoMu.Lock()
	defer s.videoMu.Unlock()

	log.Info().Int("scene", sceneNumber).Str("stage", string(model.StageVideoQueue)).Msg("场景视频排队中")

	result, err := s.video.Generate(ctx, prompt, sceneNumber)
	if err != nil {
		return nil, err
	}

	log.Info().Int("scene", sceneNumber).Str("stage", string(model.StageVideoReady)).Str("origin", string(result.Origin)).Msg("场景视频就绪")
	return result, nil
}

// GenerateAllVideos 按场景顺序生成全部视频
// 单个场景失败不会让列表缺位：可上抛的错误在批量模式下也降级为占位视频
func (s *PipelineService) GenerateAllVideos(ctx context.Context, scenes []model.Scene) []model.GeneratedVideo {
	videos := make([]model.GeneratedVideo, 0, len(scenes))

	for _, scene := range scenes {
		video, err := s.GenerateSceneVideo(ctx, scene.VideoPrompt, scene.Number)
		if err != nil {
			log.Warn().Err(err).Int("scene", scene.Number).Msg("batch video generation degraded to placeholder")
			video = &model.GeneratedVideo{
				SceneNumber: scene.Number,
				VideoURL:    placeholderVideoURL(scene.Number),
				Thumbnail:   placeholderThumbURL(scene.Number),
				Status:      "error",
				Origin:      model.OriginMock,
				Error:       err.Error(),
			}
		}
		videos = append(videos, *video)
	}

	return videos
}

// GenerateSceneEffects 为单个场景生成全部音效候选
func (s *PipelineService) GenerateSceneEffects(ctx context.Context, prompt string, duration float64, sceneNumber int) ([]model.SoundEffectOption, error) {
	if duration <= 0 {
		duration = s.pipe.SceneDuration
	}
	return s.sfx.GenerateVariants(ctx, prompt, duration, sceneNumber)
}

func placeholderVideoURL(sceneNumber int) string {
	return fmt.Sprintf("/api/placeholder-video/%d", sceneNumber)
}

func placeholderThumbURL(sceneNumber int) string {
	return fmt.Sprintf("/api/placeholder-thumbnail/%d", sceneNumber)
}
