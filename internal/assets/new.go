package assets

import (
	"fmt"

	"admaker/internal/config"
)

// New 根据配置创建产物存储
func New(cfg *config.AssetsConfig) (Store, error) {
	switch cfg.Type {
	case "local", "":
		return NewDirStore(cfg.BasePath, cfg.BaseURL)
	case "oss":
		if cfg.OSS == nil {
			return nil, fmt.Errorf("oss storage requires assets.oss config")
		}
		return NewOSSStore(cfg.OSS)
	default:
		return nil, fmt.Errorf("unsupported assets type: %s", cfg.Type)
	}
}
