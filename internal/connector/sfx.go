package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"admaker/internal/assets"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
	"admaker/internal/pkg/id"
)

// sfxMoods 四个音效候选的情绪前缀，顺序即候选位顺序
var sfxMoods = []string{"upbeat", "energetic", "calm", "dramatic"}

// SFXGenerator 音效生成连接器 (ElevenLabs sound-generation API)
// 每个场景并发生成固定数量的情绪变体，单个变体失败只影响它自己的候选位
type SFXGenerator struct {
	cfg        *config.AudioConfig
	pipe       *config.PipelineConfig
	store      assets.Store
	httpClient *http.Client
}

// NewSFXGenerator 创建音效生成器
func NewSFXGenerator(cfg *config.AudioConfig, pipe *config.PipelineConfig, store assets.Store) *SFXGenerator {
	return &SFXGenerator{
		cfg:   cfg,
		pipe:  pipe,
		store: store,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateVariants 为一个场景生成全部音效候选
// 返回的候选数恒等于配置值，失败的候选位放 mock 占位音
func (g *SFXGenerator) GenerateVariants(ctx context.Context, prompt string, duration float64, sceneNumber int) ([]appmodel.SoundEffectOption, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	count := g.pipe.SFXVariants
	options := make([]appmodel.SoundEffectOption, count)

	if g.cfg.APIKey == "" {
		log.Info().Int("scene", sceneNumber).Msg("audio API key not configured, returning mock sound effects")
		for i := 0; i < count; i++ {
			options[i] = g.mockOption(sceneNumber, i, "audio API key not configured")
		}
		return options, nil
	}

	log.Info().Int("scene", sceneNumber).Int("variants", count).Msg("开始生成音效候选")

	// 变体之间相互独立，并发生成
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			mood := moodFor(idx)
			option, err := g.generateOne(ctx, mood+" "+prompt, duration, idx)
			if err != nil {
				log.Warn().Err(err).Int("scene", sceneNumber).Str("mood", mood).Msg("sfx variant failed, using mock")
				options[idx] = g.mockOption(sceneNumber, idx, err.Error())
				return
			}
			options[idx] = *option
		}(i)
	}
	wg.Wait()

	return options, nil
}

// generateOne 生成单个情绪变体
func (g *SFXGenerator) generateOne(ctx context.Context, prompt string, duration float64, idx int) (*appmodel.SoundEffectOption, error) {
	body, err := json.Marshal(map[string]any{
		"text":             prompt,
		"duration_seconds": duration,
		"prompt_influence": 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	apiURL := strings.TrimSuffix(g.cfg.BaseURL, "/") + "/v1/sound-generation"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sound generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newRemoteError("elevenlabs", resp.StatusCode, prompt, string(respBody))
	}

	name := id.New() + ".mp3"
	asset, err := g.store.Put(ctx, assets.KindSFX, name, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("store sfx: %w", err)
	}

	return &appmodel.SoundEffectOption{
		ID:     fmt.Sprintf("sfx%d", idx+1),
		Name:   capitalize(moodFor(idx)),
		URL:    asset.URL,
		Origin: appmodel.OriginReal,
	}, nil
}

// mockOption 某个候选位的占位音效
// URL 指向内置 WAV 生成端点，保证前端能试听
func (g *SFXGenerator) mockOption(sceneNumber, idx int, reason string) appmodel.SoundEffectOption {
	return appmodel.SoundEffectOption{
		ID:     fmt.Sprintf("sfx%d", idx+1),
		Name:   capitalize(moodFor(idx)),
		URL:    fmt.Sprintf("/api/mock-sfx/%d-%d.mp3", sceneNumber, idx+1),
		Origin: appmodel.OriginMock,
		Error:  reason,
	}
}

// moodFor 候选位对应的情绪，超出预置表时循环使用
func moodFor(idx int) string {
	return sfxMoods[idx%len(sfxMoods)]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
