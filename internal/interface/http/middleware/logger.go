package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader 请求ID的响应头,方便前端报障时带上
const RequestIDHeader = "X-Request-ID"

// RequestLogger 请求日志中间件
// 每个请求分配一个UUID,记录方法、路径、状态码与耗时
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		event := log.Info()
		if c.Writer.Status() >= 500 || len(c.Errors) > 0 {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", elapsed).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
