package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/pkg/response"
	"skusync/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	metric *telemetry.Metric
	config *config.Configuration
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
) *Response {
	return &Response{
		logger: logger,
		trace:  trace,
		metric: metric,
		config: config,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if strings.HasPrefix(endpoint, "/metrics") ||
			strings.HasPrefix(endpoint, "/debug/pprof") ||
			strings.HasPrefix(endpoint, "/health-check") ||
			strings.HasPrefix(endpoint, "/health") {
			c.Next()
			return
		}

		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set("requestDuration", requestTime)
		}

		// 執行下游
		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		// handler 可透過 c.Set("status") 覆寫（例如 202）
		statusCode := c.Writer.Status()
		if v, ok := c.Get("status"); ok {
			if code, ok := v.(int); ok {
				statusCode = code
			}
		}

		// 若 status >= 400：轉為應用錯誤交給 Recovery 統一輸出
		if statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, "request error"))
			return
		}

		// ---- 成功回應路徑 ----
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		// 組裝回應資料（由 handler 透過 c.Set 設定）
		data, _ := c.Get("data")
		if data == nil {
			data = map[string]any{}
		}
		msg, _ := c.Get("message")
		message := "Request Success"
		if s, ok := msg.(string); ok && s != "" {
			message = s
		}

		duration := time.Since(requestTime)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		// Trace Meta
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			Code:       0,
			DurationMs: float64(duration.Milliseconds()),
		})

		// Log
		middleware.logger.Info("[Response] "+message,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		// 封裝統一回應
		res := response.Response{
			RequestID:   fmt.Sprintf("%x", traceID[:]),
			Code:        0,
			Data:        data,
			Message:     "OK",
			Description: message,
		}

		// JSON encode（UTF-8 安全）
		jsonBytes, err := json.Marshal(res)
		if err != nil {
			// Marshal 失敗視為 500，交給 Recovery 處理
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		// 輸出 JSON
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Writer.WriteHeader(statusCode)
		if _, werr := c.Writer.Write(jsonBytes); werr != nil {
			// write 失敗也交 Recovery
			response.AbortWithError(c, cErr.InternalServer("write response failed"))
			return
		}
	}
}
