package commercial

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admaker/internal/connector"
	httputil "admaker/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// writeRemoteError 把上游失败分类映射成HTTP状态码
// 返回 true 表示错误已经写出响应
func writeRemoteError(c *gin.Context, err error) bool {
	var remoteErr *connector.RemoteError
	if !errors.As(err, &remoteErr) {
		return false
	}

	switch remoteErr.Kind {
	case connector.FailureAuth:
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Invalid API key for " + remoteErr.Service,
			Detail:  remoteErr.Body,
		})
	case connector.FailureRateLimit:
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Code:    42901,
			Message: "Rate limit exceeded - please wait a moment and try again",
			Detail:  remoteErr.Body,
		})
	case connector.FailureBadRequest:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: remoteErr.Service + " rejected the request",
			Detail:  remoteErr.Prompt,
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: remoteErr.Error(),
		})
	}
	return true
}
