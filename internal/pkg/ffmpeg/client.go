package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client FFmpeg 客户端
// 用于封装 FFmpeg 命令调用
type Client struct {
	ffmpegPath  string // FFmpeg 可执行文件路径（默认: ffmpeg）
	ffprobePath string // FFprobe 可执行文件路径（默认: ffprobe）
}

// NewClient 创建 FFmpeg 客户端
func NewClient() *Client {
	ffmpegPath := os.Getenv("FFMPEG_PATH")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	ffprobePath := os.Getenv("FFPROBE_PATH")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	return &Client{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// Installed 检查 ffmpeg 是否可用
// 合成链路在 ffmpeg 缺失时整体降级为 mock 产物，不报错
func (c *Client) Installed(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, c.ffmpegPath, "-version")
	return cmd.Run() == nil
}

// VideoInfo 视频信息
type VideoInfo struct {
	Width    int     // 宽度
	Height   int     // 高度
	Duration float64 // 时长（秒）
}

// GetVideoInfo 获取视频信息
func (c *Client) GetVideoInfo(ctx context.Context, videoPath string) (*VideoInfo, error) {
	// ffprobe -v error -select_streams v:0 -show_entries stream=width,height -show_entries format=duration -of json video.mp4
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "json",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	// 简化实现：直接解析关键字段
	outputStr := string(output)

	var info VideoInfo

	if idx := strings.Index(outputStr, `"width":`); idx != -1 {
		var width int
		if _, err := fmt.Sscanf(outputStr[idx:], `"width":%d`, &width); err == nil {
			info.Width = width
		}
	}

	if idx := strings.Index(outputStr, `"height":`); idx != -1 {
		var height int
		if _, err := fmt.Sscanf(outputStr[idx:], `"height":%d`, &height); err == nil {
			info.Height = height
		}
	}

	if idx := strings.Index(outputStr, `"duration":`); idx != -1 {
		var duration float64
		if _, err := fmt.Sscanf(outputStr[idx:], `"duration":"%f"`, &duration); err == nil {
			info.Duration = duration
		}
	}

	return &info, nil
}

// GetAudioDuration 获取音频时长（秒）
func (c *Client) GetAudioDuration(ctx context.Context, audioPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		audioPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	outputStr := string(output)
	if idx := strings.Index(outputStr, `"duration":`); idx != -1 {
		var duration float64
		if _, err := fmt.Sscanf(outputStr[idx:], `"duration":"%f"`, &duration); err == nil {
			return duration, nil
		}
	}

	return 0, fmt.Errorf("no duration in ffprobe output")
}

// HasAudioStream 检测视频是否带音频轨
func (c *Client) HasAudioStream(ctx context.Context, videoPath string) (bool, error) {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("ffprobe failed: %w", err)
	}

	return strings.TrimSpace(string(output)) == "audio", nil
}

// MixOptions 音频叠加参数
type MixOptions struct {
	BaseHasAudio bool    // 视频自身是否带音频轨
	BaseGain     float64 // 视频原音频音量（1.0 表示不衰减）
	OverlayGain  float64 // 叠加音频音量
	LoopOverlay  bool    // 叠加音频是否循环（短音效铺满整段视频）
	Duration     float64 // 输出时长限制（0 表示不限制）
}

// MixAudio 将一段音频叠加进视频
// 视频流直接 copy，音频重编码为 aac 192k
func (c *Client) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, opts MixOptions) error {
	args := mixAudioArgs(videoPath, audioPath, outputPath, opts)

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg mix audio failed: %w", err)
	}

	log.Info().
		Str("video", videoPath).
		Str("audio", audioPath).
		Str("output", outputPath).
		Bool("loop", opts.LoopOverlay).
		Msg("音频叠加完成")

	return nil
}

// mixAudioArgs 构建叠加命令参数
func mixAudioArgs(videoPath, audioPath, outputPath string, opts MixOptions) []string {
	args := []string{"-y", "-i", videoPath}

	if opts.LoopOverlay {
		args = append(args, "-stream_loop", "-1")
	}
	args = append(args, "-i", audioPath)

	if opts.Duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%.2f", opts.Duration))
	}

	var filter string
	switch {
	case !opts.BaseHasAudio:
		// 视频无音频轨，叠加的音频就是唯一输出轨
		filter = fmt.Sprintf("[1:a]volume=%.1f[aout]", opts.OverlayGain)
	case opts.BaseGain != 1.0:
		// 压低原音频，突出叠加轨（旁白覆盖场景）
		filter = fmt.Sprintf(
			"[0:a]volume=%.1f[bg];[1:a]volume=%.1f[vo];[bg][vo]amix=inputs=2:duration=first:dropout_transition=2[aout]",
			opts.BaseGain, opts.OverlayGain)
	default:
		// 原音频保持原音量，叠加轨衰减后混入（音效混入场景）
		filter = fmt.Sprintf(
			"[1:a]volume=%.1f[ovl];[0:a][ovl]amix=inputs=2:duration=first:dropout_transition=2[aout]",
			opts.OverlayGain)
	}

	args = append(args,
		"-filter_complex", filter,
		"-map", "0:v", "-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest",
		outputPath,
	)

	return args
}

// AttachAudio 给无音频轨的视频挂接音频（不做混音）
func (c *Client) AttachAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg attach audio failed: %w", err)
	}

	return nil
}

// ConcatVideos 按顺序拼接多个视频
// 使用 concat demuxer，整条链路只在这里重编码一次
func (c *Client) ConcatVideos(ctx context.Context, videoPaths []string, outputPath string) error {
	if len(videoPaths) == 0 {
		return fmt.Errorf("no videos to concat")
	}

	concatListFile := filepath.Join(filepath.Dir(outputPath),
		"concat_"+strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))+".txt")

	if err := writeConcatList(videoPaths, concatListFile); err != nil {
		return err
	}
	defer os.Remove(concatListFile) // 清理临时文件

	// ffmpeg -f concat -safe 0 -i concat_list.txt -c:v libx264 -preset fast -crf 23 -c:a aac -b:a 192k output.mp4
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatListFile,
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-b:a", "192k",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w", err)
	}

	log.Info().
		Int("count", len(videoPaths)).
		Str("output", outputPath).
		Msg("视频拼接完成")

	return nil
}

// writeConcatList 生成 concat demuxer 的清单文件
// 格式固定为每行 file '<绝对路径>'
func writeConcatList(videoPaths []string, listPath string) error {
	file, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("create concat list file: %w", err)
	}
	defer file.Close()

	for _, videoPath := range videoPaths {
		absPath, err := filepath.Abs(videoPath)
		if err != nil {
			return fmt.Errorf("get absolute path: %w", err)
		}
		fmt.Fprintf(file, "file '%s'\n", absPath)
	}

	return nil
}

// ExtractThumbnail 从视频第 1 秒抽一帧作为缩略图
func (c *Client) ExtractThumbnail(ctx context.Context, videoPath, outputPath string) error {
	args := []string{
		"-y",
		"-ss", "1",
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg thumbnail failed: %w", err)
	}

	return nil
}
