package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DirStore 本地目录存储
// 每个产物类别一个子目录，gin 直接对子目录做静态服务
type DirStore struct {
	basePath string
	baseURL  string
}

// NewDirStore 创建本地目录存储，并确保各类别目录存在
func NewDirStore(basePath, baseURL string) (*DirStore, error) {
	for _, kind := range Kinds() {
		if err := os.MkdirAll(filepath.Join(basePath, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create assets dir: %w", err)
		}
	}

	return &DirStore{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put 从字节流写入产物
func (s *DirStore) Put(ctx context.Context, kind Kind, name string, data io.Reader) (*Asset, error) {
	fullPath := filepath.Join(s.basePath, string(kind), name)

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create asset file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // 删除写了一半的文件
		return nil, fmt.Errorf("write asset file: %w", err)
	}

	return &Asset{
		Kind: kind,
		Name: name,
		Path: fullPath,
		URL:  s.URL(kind, name),
	}, nil
}

// Add 将本地已生成的文件收入存储
// 优先 rename，跨文件系统时退回复制
func (s *DirStore) Add(ctx context.Context, kind Kind, name string, srcPath string) (*Asset, error) {
	fullPath := filepath.Join(s.basePath, string(kind), name)

	if err := os.Rename(srcPath, fullPath); err != nil {
		src, openErr := os.Open(srcPath)
		if openErr != nil {
			return nil, fmt.Errorf("open source file: %w", openErr)
		}
		defer src.Close()

		asset, putErr := s.Put(ctx, kind, name, src)
		if putErr != nil {
			return nil, putErr
		}
		os.Remove(srcPath)
		return asset, nil
	}

	return &Asset{
		Kind: kind,
		Name: name,
		Path: fullPath,
		URL:  s.URL(kind, name),
	}, nil
}

// Resolve 返回产物的本地路径
func (s *DirStore) Resolve(kind Kind, name string) (string, bool) {
	// 文件名里不允许出现路径分隔符，防止目录穿越
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", false
	}

	fullPath := filepath.Join(s.basePath, string(kind), name)
	if _, err := os.Stat(fullPath); err != nil {
		return "", false
	}
	return fullPath, true
}

// ResolveURL 从访问URL反解出类别和文件名
func (s *DirStore) ResolveURL(rawURL string) (Kind, string, bool) {
	path := stripHost(rawURL)

	for _, kind := range Kinds() {
		prefix := s.baseURL + "/" + string(kind) + "/"
		if strings.HasPrefix(path, prefix) {
			name := strings.TrimPrefix(path, prefix)
			if name != "" && !strings.ContainsAny(name, "/\\") {
				return kind, name, true
			}
		}
	}
	return "", "", false
}

// URL 生成产物的访问URL
func (s *DirStore) URL(kind Kind, name string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, kind, name)
}

// Remove 删除产物
func (s *DirStore) Remove(ctx context.Context, kind Kind, name string) error {
	path, ok := s.Resolve(kind, name)
	if !ok {
		return nil // 不存在视为删除成功
	}
	return os.Remove(path)
}

// Dir 返回类别的本地目录
func (s *DirStore) Dir(kind Kind) string {
	return filepath.Join(s.basePath, string(kind))
}

// Type 存储类型
func (s *DirStore) Type() string {
	return "local"
}
