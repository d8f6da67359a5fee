package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"admaker/internal/config"
	"admaker/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "admaker",
	Short: "AdMaker - AI commercial video generation service",
	Long: `AdMaker generates 30-second product commercials end to end:
script writing, per-scene video generation, sound effect variants,
narration synthesis and ffmpeg composition into a final video.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 文件（API key 等敏感配置习惯放在这里）
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.admaker")
	}

	// 环境变量设置
	viper.SetEnvPrefix("ADMAKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	// AI (脚本生成 LLM)
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4")
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 4096)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Video (fal.ai)
	viper.SetDefault("video.base_url", "https://queue.fal.run")
	viper.SetDefault("video.model", "fal-ai/veo2")
	viper.SetDefault("video.poll_interval", "5s")
	viper.SetDefault("video.poll_timeout", "10m")

	// Audio (ElevenLabs)
	viper.SetDefault("audio.base_url", "https://api.elevenlabs.io")

	// Assets
	viper.SetDefault("assets.type", "local")
	viper.SetDefault("assets.base_path", "./outputs")
	viper.SetDefault("assets.base_url", "/api")

	// Cache (可选)
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.voice_ttl", "30m")

	// Pipeline 业务常量
	viper.SetDefault("pipeline.scene_count", 4)
	viper.SetDefault("pipeline.scene_duration", 7.5)
	viper.SetDefault("pipeline.sfx_variants", 4)
	viper.SetDefault("pipeline.sfx_gain", 0.3)
	viper.SetDefault("pipeline.narration_gain", 1.0)
	viper.SetDefault("pipeline.narration_bed_gain", 0.3)
	viper.SetDefault("pipeline.words_per_minute", 150)
	viper.SetDefault("pipeline.voice_limit", 8)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
