package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Video    VideoConfig    `mapstructure:"video"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig 脚本生成 LLM 配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// VideoConfig 视频生成服务配置 (fal.ai)
type VideoConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// AudioConfig 音频生成服务配置 (ElevenLabs)
type AudioConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// AssetsConfig 产物存储配置
type AssetsConfig struct {
	Type     string     `mapstructure:"type"`      // local, oss
	BasePath string     `mapstructure:"base_path"` // 本地基础路径
	BaseURL  string     `mapstructure:"base_url"`  // 访问URL前缀
	OSS      *OSSConfig `mapstructure:"oss,omitempty"`
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	PresignExpiry   int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// CacheConfig Redis 缓存配置（可选，用于音色列表缓存）
type CacheConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	VoiceTTL time.Duration `mapstructure:"voice_ttl"`
}

// PipelineConfig 广告生成管线业务常量
// 这些值决定最终广告的结构（4 个 7.5 秒场景 = 30 秒）和混音参数，
// 不要凭感觉改动
type PipelineConfig struct {
	SceneCount       int     `mapstructure:"scene_count"`        // 场景数
	SceneDuration    float64 `mapstructure:"scene_duration"`     // 单场景时长（秒）
	SFXVariants      int     `mapstructure:"sfx_variants"`       // 每个场景的音效候选数
	SFXGain          float64 `mapstructure:"sfx_gain"`           // 音效混入音量
	NarrationGain    float64 `mapstructure:"narration_gain"`     // 旁白音量
	NarrationBedGain float64 `mapstructure:"narration_bed_gain"` // 叠加旁白时背景音音量
	WordsPerMinute   int     `mapstructure:"words_per_minute"`   // 旁白语速估算
	VoiceLimit       int     `mapstructure:"voice_limit"`        // 音色列表上限
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Pipeline.SceneCount <= 0 {
		return errors.New("pipeline.scene_count must be positive")
	}
	if c.Pipeline.SceneDuration <= 0 {
		return errors.New("pipeline.scene_duration must be positive")
	}
	if c.Pipeline.SFXVariants <= 0 {
		return errors.New("pipeline.sfx_variants must be positive")
	}

	if c.Assets.Type == "oss" && c.Assets.OSS == nil {
		return errors.New("assets.oss must be configured when assets.type is oss")
	}

	return nil
}
