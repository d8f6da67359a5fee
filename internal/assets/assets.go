// Package assets 管理管线产物的存储。
// 产物一律以 uuid 命名落盘，文件存在即记录存在，不引入数据库。
package assets

import (
	"context"
	"io"
	"strings"
)

// Kind 产物类别，值同时作为 URL 命名空间
type Kind string

const (
	KindVideo     Kind = "videos"     // 单场景生成视频
	KindSFX       Kind = "sfx"        // 音效候选
	KindNarration Kind = "voiceovers" // 旁白音频
	KindStitched  Kind = "stitched"   // 场景+音效合成视频
	KindFinal     Kind = "final"      // 最终成片
	KindThumb     Kind = "thumbnails" // 场景缩略图
)

// Kinds 返回全部产物类别
func Kinds() []Kind {
	return []Kind{KindVideo, KindSFX, KindNarration, KindStitched, KindFinal, KindThumb}
}

// Asset 一个已入库的产物
type Asset struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"` // 文件名（uuid + 扩展名）
	Path string `json:"path"` // 本地路径（非本地存储为空）
	URL  string `json:"url"`  // 对外访问URL
}

// Store 产物存储接口
type Store interface {
	// Put 从字节流写入产物
	Put(ctx context.Context, kind Kind, name string, data io.Reader) (*Asset, error)

	// Add 将本地已生成的文件收入存储（ffmpeg 输出走这里）
	Add(ctx context.Context, kind Kind, name string, srcPath string) (*Asset, error)

	// Resolve 返回产物的本地路径，仅本地存储有意义
	Resolve(kind Kind, name string) (string, bool)

	// ResolveURL 从访问URL反解出类别和文件名
	ResolveURL(rawURL string) (Kind, string, bool)

	// URL 生成产物的访问URL
	URL(kind Kind, name string) string

	// Remove 删除产物
	Remove(ctx context.Context, kind Kind, name string) error

	// Dir 返回类别的本地目录（用于静态文件服务，非本地存储返回空）
	Dir(kind Kind) string

	// Type 存储类型
	Type() string
}

// stripHost 去掉URL里的 scheme 和 host，留下路径部分
func stripHost(rawURL string) string {
	if idx := strings.Index(rawURL, "://"); idx != -1 {
		rest := rawURL[idx+3:]
		if slash := strings.Index(rest, "/"); slash != -1 {
			return rest[slash:]
		}
		return "/"
	}
	return rawURL
}

// contentTypeOf 根据扩展名推断Content-Type
func contentTypeOf(name string) string {
	switch {
	case strings.HasSuffix(name, ".mp4"):
		return "video/mp4"
	case strings.HasSuffix(name, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(name, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
