package middleware

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"skusync/config"
	"skusync/internal/core"
	"skusync/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Logger struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
) *Logger {
	return &Logger{
		logger: logger,
		trace:  trace,
		config: config,
	}
}

// LoggerHandler 記錄每個請求的詳細資訊（避免讀取二進位 body；文字 body 做安全截斷與 UTF-8 處理）
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if strings.HasPrefix(endpoint, "/metrics") ||
			strings.HasPrefix(endpoint, "/debug/pprof") ||
			strings.HasPrefix(endpoint, "/health-check") {
			c.Next()
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		// ===== 判斷 content-type，二進位不讀 body =====
		ct := c.GetHeader("Content-Type")
		mediaType, _, _ := mime.ParseMediaType(ct)
		isBinary := isBinaryContent(mediaType)

		var bodyRaw string
		if !isBinary && c.Request.Body != nil && c.Request.ContentLength != 0 {
			// 讀完整 body 後回填，確保下游仍可讀取
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			bodyRaw = toSafePreview(data, 2000)
		} else if isBinary {
			// 二進位內容不讀 body，提供簡短標記
			if c.Request.ContentLength > 0 {
				bodyRaw = fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
			} else {
				bodyRaw = fmt.Sprintf("(binary %s)", mediaType)
			}
		}

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		// headers → map[string]string（lowercase key）
		headerMap := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			lk := strings.ToLower(k)
			if lk == "authorization" || lk == "x-api-key" {
				headerMap[lk] = "***"
				continue
			}
			headerMap[lk] = strings.Join(v, ",")
		}

		meta := core.TraceRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   endpoint,
			Query:      query,
			Body:       bodyRaw,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
		}
		m.trace.ApplyTraceAttributes(span, meta)

		logFields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if bodyRaw != "" {
			logFields = append(logFields, zap.String("body", bodyRaw))
		}
		logFields = append(logFields, zap.String("spanId", fmt.Sprintf("%x", spanID[:])))
		logFields = append(logFields, zap.String("traceId", fmt.Sprintf("%x", traceID[:])))

		m.logger.Info("[Request] logging middleware message", logFields...)

		end(nil)
		c.Next()
	}
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	// 非 UTF-8 -> base64（先截斷，避免輸出過大）
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

// 是否為二進位內容（不讀 body）
func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
