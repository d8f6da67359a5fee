package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"admaker/internal/assets"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
	"admaker/internal/pkg/ffmpeg"
	"admaker/internal/pkg/id"
)

// VideoGenerator 场景视频生成连接器 (fal.ai 队列 API)
// 提交任务后轮询状态，完成后把视频下载进产物存储并抽缩略图
type VideoGenerator struct {
	cfg        *config.VideoConfig
	store      assets.Store
	media      *ffmpeg.Client
	httpClient *http.Client
}

// NewVideoGenerator 创建视频生成器
func NewVideoGenerator(cfg *config.VideoConfig, store assets.Store, media *ffmpeg.Client) *VideoGenerator {
	if cfg.APIKey == "" {
		log.Warn().Msg("video API key not configured, scene videos will use placeholders")
	}

	return &VideoGenerator{
		cfg:   cfg,
		store: store,
		media: media,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Generate 为一个场景生成视频
//
// 错误约定：
//   - 空提示词返回 ErrEmptyPrompt
//   - 认证/限流/非法请求返回 *RemoteError，由调用方决定如何呈现
//   - 其余失败降级为占位视频，场景列表永远不缺位
func (g *VideoGenerator) Generate(ctx context.Context, prompt string, sceneNumber int) (*appmodel.GeneratedVideo, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	if g.cfg.APIKey == "" {
		return g.placeholder(sceneNumber, "mock", "video API key not configured"), nil
	}

	log.Info().Int("scene", sceneNumber).Str("prompt", truncate(prompt, 120)).Msg("开始生成场景视频")

	statusURL, responseURL, err := g.submit(ctx, strings.TrimSpace(prompt))
	if err != nil {
		return g.degrade(sceneNumber, err)
	}

	if err := g.waitUntilDone(ctx, statusURL, sceneNumber); err != nil {
		return g.degrade(sceneNumber, err)
	}

	videoURL, err := g.fetchResultURL(ctx, responseURL, prompt)
	if err != nil {
		return g.degrade(sceneNumber, err)
	}

	videoID := id.New()
	name := videoID + ".mp4"

	asset, err := g.download(ctx, videoURL, name)
	if err != nil {
		return g.degrade(sceneNumber, err)
	}

	result := &appmodel.GeneratedVideo{
		SceneNumber: sceneNumber,
		VideoURL:    asset.URL,
		Status:      "success",
		Origin:      appmodel.OriginReal,
	}
	result.Thumbnail = g.extractThumbnail(ctx, videoID, name)

	log.Info().Int("scene", sceneNumber).Str("video", asset.URL).Msg("场景视频生成完成")
	return result, nil
}

// degrade 按失败分类决定上抛还是降级
func (g *VideoGenerator) degrade(sceneNumber int, err error) (*appmodel.GeneratedVideo, error) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Kind != FailureUnknown {
		return nil, remoteErr
	}

	log.Warn().Err(err).Int("scene", sceneNumber).Msg("video generation failed, using placeholder")
	return g.placeholder(sceneNumber, "error", err.Error()), nil
}

// placeholder 构造占位视频结果
func (g *VideoGenerator) placeholder(sceneNumber int, status, annotation string) *appmodel.GeneratedVideo {
	return &appmodel.GeneratedVideo{
		SceneNumber: sceneNumber,
		VideoURL:    fmt.Sprintf("/api/placeholder-video/%d", sceneNumber),
		Thumbnail:   fmt.Sprintf("/api/placeholder-thumbnail/%d", sceneNumber),
		Status:      status,
		Origin:      appmodel.OriginMock,
		Error:       annotation,
	}
}

// submit 提交生成任务，返回状态查询和结果获取的URL
func (g *VideoGenerator) submit(ctx context.Context, prompt string) (statusURL, responseURL string, err error) {
	body, err := json.Marshal(map[string]any{"prompt": prompt})
	if err != nil {
		return "", "", fmt.Errorf("marshal request: %w", err)
	}

	apiURL := strings.TrimSuffix(g.cfg.BaseURL, "/") + "/" + g.cfg.Model

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("submit video task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return "", "", newRemoteError("fal.ai", resp.StatusCode, prompt, string(respBody))
	}

	var queued struct {
		RequestID   string `json:"request_id"`
		StatusURL   string `json:"status_url"`
		ResponseURL string `json:"response_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&queued); err != nil {
		return "", "", fmt.Errorf("decode queue response: %w", err)
	}
	if queued.StatusURL == "" || queued.ResponseURL == "" {
		return "", "", fmt.Errorf("queue response missing status/response url")
	}

	log.Debug().Str("request_id", queued.RequestID).Msg("视频生成任务提交成功")
	return queued.StatusURL, queued.ResponseURL, nil
}

// waitUntilDone 轮询任务状态直到完成
func (g *VideoGenerator) waitUntilDone(ctx context.Context, statusURL string, sceneNumber int) error {
	deadline := time.Now().Add(g.cfg.PollTimeout)

	for {
		if time.Now().After(deadline) {
			return fmt.Errorf("video generation timeout after %v", g.cfg.PollTimeout)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return fmt.Errorf("create status request: %w", err)
		}
		req.Header.Set("Authorization", "Key "+g.cfg.APIKey)

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("poll task status: %w", err)
		}

		var status struct {
			Status string `json:"status"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&status)
		resp.Body.Close()
		if decodeErr != nil {
			return fmt.Errorf("decode status response: %w", decodeErr)
		}

		switch status.Status {
		case "COMPLETED":
			return nil
		case "FAILED", "ERROR":
			return fmt.Errorf("video generation task failed")
		}

		log.Debug().Int("scene", sceneNumber).Str("status", status.Status).Msg("视频生成中，继续等待...")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.cfg.PollInterval):
		}
	}
}

// fetchResultURL 获取任务结果并提取视频URL
func (g *VideoGenerator) fetchResultURL(ctx context.Context, responseURL, prompt string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, responseURL, nil)
	if err != nil {
		return "", fmt.Errorf("create result request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch task result: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read task result: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newRemoteError("fal.ai", resp.StatusCode, prompt, string(body))
	}

	videoURL, ok := extractVideoURL(body)
	if !ok {
		return "", fmt.Errorf("no video URL found in response")
	}
	return videoURL, nil
}

// extractVideoURL 从结果载荷中提取视频URL
// 不同模型的返回结构不一致，按优先级逐个尝试：
// video.url > video_url > url > 纯字符串
func extractVideoURL(body []byte) (string, bool) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		// 有些模型把结果再包一层 data
		if data, ok := payload["data"].(map[string]any); ok {
			if url, ok := urlFromPayload(data); ok {
				return url, true
			}
		}
		if url, ok := urlFromPayload(payload); ok {
			return url, true
		}
		return "", false
	}

	trimmed := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if strings.HasPrefix(trimmed, "http") {
		return trimmed, true
	}
	return "", false
}

func urlFromPayload(payload map[string]any) (string, bool) {
	if video, ok := payload["video"].(map[string]any); ok {
		if url, ok := video["url"].(string); ok && url != "" {
			return url, true
		}
	}
	if url, ok := payload["video_url"].(string); ok && url != "" {
		return url, true
	}
	if url, ok := payload["url"].(string); ok && url != "" {
		return url, true
	}
	return "", false
}

// download 把远端视频下载进产物存储
func (g *VideoGenerator) download(ctx context.Context, videoURL, name string) (*assets.Asset, error) {
	tmpPath := filepath.Join(os.TempDir(), "video_"+name)

	if err := assets.FetchToFile(ctx, g.httpClient, videoURL, tmpPath); err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}

	asset, err := g.store.Add(ctx, assets.KindVideo, name, tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("store video: %w", err)
	}
	return asset, nil
}

// extractThumbnail 抽取缩略图，失败只影响缩略图本身
func (g *VideoGenerator) extractThumbnail(ctx context.Context, videoID, name string) string {
	videoPath, ok := g.store.Resolve(assets.KindVideo, name)
	if !ok || !g.media.Installed(ctx) {
		return ""
	}

	thumbName := videoID + ".jpg"
	tmpPath := filepath.Join(os.TempDir(), "thumb_"+thumbName)

	if err := g.media.ExtractThumbnail(ctx, videoPath, tmpPath); err != nil {
		log.Warn().Err(err).Str("video", name).Msg("thumbnail extraction failed")
		os.Remove(tmpPath)
		return ""
	}

	asset, err := g.store.Add(ctx, assets.KindThumb, thumbName, tmpPath)
	if err != nil {
		log.Warn().Err(err).Str("video", name).Msg("thumbnail store failed")
		os.Remove(tmpPath)
		return ""
	}
	return asset.URL
}
