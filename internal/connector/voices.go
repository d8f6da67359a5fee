package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"admaker/internal/config"
	appmodel "admaker/internal/model"
	"admaker/internal/pkg/cache"
)

// VoiceCatalog 旁白音色目录
// 上游目录变化不频繁，配置了 Redis 时按 TTL 缓存
type VoiceCatalog struct {
	cfg        *config.AudioConfig
	pipe       *config.PipelineConfig
	cache      *cache.RedisCache // 可为 nil
	cacheTTL   time.Duration
	httpClient *http.Client
}

// NewVoiceCatalog 创建音色目录
func NewVoiceCatalog(cfg *config.AudioConfig, pipe *config.PipelineConfig, redisCache *cache.RedisCache, cacheTTL time.Duration) *VoiceCatalog {
	return &VoiceCatalog{
		cfg:      cfg,
		pipe:     pipe,
		cache:    redisCache,
		cacheTTL: cacheTTL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// List 返回可用音色，数量不超过配置上限
// 上游不可用时返回内置音色，不报错
func (c *VoiceCatalog) List(ctx context.Context) []appmodel.Voice {
	if c.cfg.APIKey == "" {
		return c.mockVoices()
	}

	if c.cache != nil {
		var cached []appmodel.Voice
		if err := c.cache.Get(ctx, cache.VoiceCatalogCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	voices, err := c.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("voice catalog fetch failed, using mock voices")
		return c.mockVoices()
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cache.VoiceCatalogCacheKey, voices, c.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache voice catalog")
		}
	}

	return voices
}

// Default 旁白默认音色：优先 adam/rachel，否则目录第一个
func (c *VoiceCatalog) Default(ctx context.Context) appmodel.Voice {
	voices := c.List(ctx)

	for _, voice := range voices {
		name := strings.ToLower(voice.Name)
		if strings.Contains(name, "adam") || strings.Contains(name, "rachel") {
			return voice
		}
	}
	return voices[0]
}

// fetch 拉取上游音色目录
func (c *VoiceCatalog) fetch(ctx context.Context) ([]appmodel.Voice, error) {
	apiURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v1/voices"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch voices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newRemoteError("elevenlabs", resp.StatusCode, "", string(respBody))
	}

	var payload voicesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode voices: %w", err)
	}

	return c.filter(&payload), nil
}

// voicesPayload 上游音色目录响应
type voicesPayload struct {
	Voices []struct {
		VoiceID     string `json:"voice_id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		PreviewURL  string `json:"preview_url"`
	} `json:"voices"`
}

// filter 只保留通用音色并截断到上限
func (c *VoiceCatalog) filter(payload *voicesPayload) []appmodel.Voice {
	voices := make([]appmodel.Voice, 0, c.pipe.VoiceLimit)

	for _, v := range payload.Voices {
		if v.Category != "" && v.Category != "premade" && v.Category != "professional" {
			continue
		}
		voices = append(voices, appmodel.Voice{
			ID:          v.VoiceID,
			Name:        v.Name,
			Category:    v.Category,
			Description: v.Description,
			PreviewURL:  v.PreviewURL,
		})
		if len(voices) >= c.pipe.VoiceLimit {
			break
		}
	}

	if len(voices) == 0 {
		return c.mockVoices()
	}
	return voices
}

// mockVoices 内置音色
func (c *VoiceCatalog) mockVoices() []appmodel.Voice {
	return []appmodel.Voice{
		{ID: "voice1", Name: "Sarah", Description: "Warm, friendly female voice"},
		{ID: "voice2", Name: "James", Description: "Professional male voice"},
		{ID: "voice3", Name: "Emma", Description: "Energetic female voice"},
		{ID: "voice4", Name: "Michael", Description: "Authoritative male voice"},
	}
}
