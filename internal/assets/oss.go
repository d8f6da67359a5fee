package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"admaker/internal/config"
)

// OSSStore 阿里云OSS存储
// 对象 key 为 <kind>/<name>；产物没有本地路径，合成链路会按URL回源下载
type OSSStore struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
}

// NewOSSStore 创建阿里云OSS存储
func NewOSSStore(cfg *config.OSSConfig) (*OSSStore, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStore{
		bucket:     bucket,
		bucketName: cfg.Bucket,
		endpoint:   cfg.Endpoint,
	}, nil
}

// Put 从字节流写入产物
func (s *OSSStore) Put(ctx context.Context, kind Kind, name string, data io.Reader) (*Asset, error) {
	key := s.key(kind, name)

	options := []oss.Option{
		oss.ContentType(contentTypeOf(name)),
	}

	if err := s.bucket.PutObject(key, data, options...); err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	return &Asset{
		Kind: kind,
		Name: name,
		URL:  s.URL(kind, name),
	}, nil
}

// Add 将本地已生成的文件收入存储
func (s *OSSStore) Add(ctx context.Context, kind Kind, name string, srcPath string) (*Asset, error) {
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

// Resolve OSS 存储没有本地路径
func (s *OSSStore) Resolve(kind Kind, name string) (string, bool) {
	return "", false
}

// ResolveURL 从访问URL反解出类别和文件名
func (s *OSSStore) ResolveURL(rawURL string) (Kind, string, bool) {
	path := strings.TrimPrefix(stripHost(rawURL), "/")

	for _, kind := range Kinds() {
		prefix := string(kind) + "/"
		if strings.HasPrefix(path, prefix) {
			name := strings.TrimPrefix(path, prefix)
			if name != "" && !strings.Contains(name, "/") {
				return kind, name, true
			}
		}
	}
	return "", "", false
}

// URL 生成产物的访问URL
func (s *OSSStore) URL(kind Kind, name string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, s.key(kind, name))
}

// Remove 删除产物
func (s *OSSStore) Remove(ctx context.Context, kind Kind, name string) error {
	if err := s.bucket.DeleteObject(s.key(kind, name)); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// Dir OSS 存储没有本地目录
func (s *OSSStore) Dir(kind Kind) string {
	return ""
}

// Type 存储类型
func (s *OSSStore) Type() string {
	return "oss"
}

func (s *OSSStore) key(kind Kind, name string) string {
	return string(kind) + "/" + name
}
