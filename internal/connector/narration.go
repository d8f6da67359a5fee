package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"admaker/internal/assets"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
	"admaker/internal/pkg/id"
)

// Narrator 旁白合成连接器 (ElevenLabs TTS API)
type Narrator struct {
	cfg        *config.AudioConfig
	pipe       *config.PipelineConfig
	store      assets.Store
	catalog    *VoiceCatalog
	httpClient *http.Client
}

// NewNarrator 创建旁白合成器
func NewNarrator(cfg *config.AudioConfig, pipe *config.PipelineConfig, store assets.Store, catalog *VoiceCatalog) *Narrator {
	return &Narrator{
		cfg:     cfg,
		pipe:    pipe,
		store:   store,
		catalog: catalog,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Generate 合成旁白音频
//
// 错误约定与视频生成一致：空文本返回 ErrEmptyText，
// 认证/限流/非法请求上抛 *RemoteError，其余失败降级为 mock 旁白
func (n *Narrator) Generate(ctx context.Context, text, voiceID, voiceName string) (*appmodel.NarrationTrack, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if n.cfg.APIKey == "" {
		return n.mockTrack(voiceName, "audio API key not configured"), nil
	}

	// 未指定音色时用目录默认音色
	if voiceID == "" {
		voice := n.catalog.Default(ctx)
		voiceID = voice.ID
		voiceName = voice.Name
		log.Info().Str("voice", voiceName).Msg("no voice specified, using default")
	}

	log.Info().Str("voice_id", voiceID).Int("chars", len(text)).Msg("开始合成旁白")

	audio, err := n.synthesize(ctx, strings.TrimSpace(text), voiceID)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.Kind != FailureUnknown {
			return nil, remoteErr
		}

		log.Warn().Err(err).Msg("narration synthesis failed, using mock voiceover")
		track := n.mockTrack(voiceName, err.Error())
		track.Error = err.Error()
		return track, nil
	}

	name := id.New() + ".mp3"
	asset, err := n.store.Put(ctx, assets.KindNarration, name, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("store narration: %w", err)
	}

	wordCount := countWords(text)
	track := &appmodel.NarrationTrack{
		AudioURL:  asset.URL,
		VoiceUsed: voiceName,
		Duration:  EstimateDuration(text, n.pipe.WordsPerMinute),
		WordCount: wordCount,
		FileSize:  fmt.Sprintf("%.2f KB", float64(len(audio))/1024),
		Origin:    appmodel.OriginReal,
	}

	log.Info().Str("audio", asset.URL).Int("words", wordCount).Int("duration", track.Duration).Msg("旁白合成完成")
	return track, nil
}

// synthesize 调用 TTS 接口，返回音频字节
func (n *Narrator) synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": "eleven_monolingual_v1",
		"voice_settings": map[string]any{
			"stability":         0.75,
			"similarity_boost":  0.75,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1/text-to-speech/%s", strings.TrimSuffix(n.cfg.BaseURL, "/"), voiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", n.cfg.APIKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newRemoteError("elevenlabs", resp.StatusCode, text, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

// mockTrack 占位旁白，指向内置 WAV 生成端点
func (n *Narrator) mockTrack(voiceName, reason string) *appmodel.NarrationTrack {
	if voiceName == "" {
		voiceName = "Default Voice"
	}

	return &appmodel.NarrationTrack{
		AudioURL:  "/api/mock-voiceover/final.mp3",
		VoiceUsed: voiceName,
		Duration:  int(n.pipe.SceneDuration * float64(n.pipe.SceneCount)),
		Origin:    appmodel.OriginMock,
		Error:     reason,
	}
}

// EstimateDuration 按语速估算旁白时长（秒），向上取整
func EstimateDuration(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 150
	}
	words := countWords(text)
	return int(math.Ceil(float64(words) / float64(wordsPerMinute) * 60))
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
