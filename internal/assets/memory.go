package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// MemStore 内存存储，测试用
type MemStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{
		objects: make(map[string][]byte),
		baseURL: "/api",
	}
}

// Put 从字节流写入产物
func (s *MemStore) Put(ctx context.Context, kind Kind, name string, data io.Reader) (*Asset, error) {
	content, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read asset data: %w", err)
	}

	s.mu.Lock()
	s.objects[string(kind)+"/"+name] = content
	s.mu.Unlock()

	return &Asset{
		Kind: kind,
		Name: name,
		URL:  s.URL(kind, name),
	}, nil
}

// Add 将本地已生成的文件收入存储
func (s *MemStore) Add(ctx context.Context, kind Kind, name string, srcPath string) (*Asset, error) {
	file, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	asset, err := s.Put(ctx, kind, name, file)
	if err != nil {
		return nil, err
	}
	os.Remove(srcPath)
	return asset, nil
}

// Resolve 内存存储没有本地路径
func (s *MemStore) Resolve(kind Kind, name string) (string, bool) {
	return "", false
}

// ResolveURL 从访问URL反解出类别和文件名
func (s *MemStore) ResolveURL(rawURL string) (Kind, string, bool) {
	path := stripHost(rawURL)

	for _, kind := range Kinds() {
		prefix := s.baseURL + "/" + string(kind) + "/"
		if strings.HasPrefix(path, prefix) {
			name := strings.TrimPrefix(path, prefix)
			if name != "" {
				return kind, name, true
			}
		}
	}
	return "", "", false
}

// URL 生成产物的访问URL
func (s *MemStore) URL(kind Kind, name string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, kind, name)
}

// Remove 删除产物
func (s *MemStore) Remove(ctx context.Context, kind Kind, name string) error {
	s.mu.Lock()
	delete(s.objects, string(kind)+"/"+name)
	s.mu.Unlock()
	return nil
}

// Dir 内存存储没有本地目录
func (s *MemStore) Dir(kind Kind) string {
	return ""
}

// Type 存储类型
func (s *MemStore) Type() string {
	return "memory"
}

// Get 读取产物内容（仅测试断言用）
func (s *MemStore) Get(kind Kind, name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[string(kind)+"/"+name]
	return data, ok
}

// Len 产物数量（仅测试断言用）
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
