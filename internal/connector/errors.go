// Package connector 封装对外部生成服务的调用。
// 每个连接器都带内置降级：上游不可用时返回标注为 mock 的可用产物，
// 只有调用方输入错误和明确的认证/限流/非法请求会以 error 上抛。
package connector

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt 调用方没有给出提示词
var ErrEmptyPrompt = errors.New("prompt is required and cannot be empty")

// ErrEmptyText 调用方没有给出旁白文本
var ErrEmptyText = errors.New("text is required and cannot be empty")

// FailureKind 上游失败分类
type FailureKind string

const (
	FailureAuth       FailureKind = "auth"        // 401/403，密钥问题，重试无意义
	FailureRateLimit  FailureKind = "rate_limit"  // 429，稍后重试
	FailureBadRequest FailureKind = "bad_request" // 400，请求内容本身有问题
	FailureUnknown    FailureKind = "unknown"     // 其余，调用方降级处理
)

// RemoteError 上游服务错误
type RemoteError struct {
	Service string      // 出错的服务名
	Kind    FailureKind // 失败分类
	Status  int         // HTTP 状态码
	Prompt  string      // 触发请求的提示词（bad_request 时回传给调用方）
	Body    string      // 上游响应体摘要
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Service, e.Kind, e.Status)
}

// classify 按 HTTP 状态码归类上游失败
func classify(status int) FailureKind {
	switch {
	case status == 401 || status == 403:
		return FailureAuth
	case status == 429:
		return FailureRateLimit
	case status == 400 || status == 422:
		return FailureBadRequest
	default:
		return FailureUnknown
	}
}

// newRemoteError 构建上游错误，body 超长时截断
func newRemoteError(service string, status int, prompt, body string) *RemoteError {
	if len(body) > 512 {
		body = body[:512]
	}
	return &RemoteError{
		Service: service,
		Kind:    classify(status),
		Status:  status,
		Prompt:  prompt,
		Body:    body,
	}
}
