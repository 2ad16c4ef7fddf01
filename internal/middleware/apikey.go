package middleware

import (
	"crypto/subtle"
	"strings"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/pkg/response"
	"skusync/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIKey struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewAPIKey(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
) *APIKey {
	return &APIKey{
		logger: logger,
		trace:  trace,
		config: config,
	}
}

// Handler 靜態 API Key 驗證。APP__API_KEY 留空表示開放存取
func (middleware *APIKey) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.config.App.APIKey == "" {
			c.Next()
			return
		}

		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanAPIKeyMiddleware))

		type apiKeyMeta struct {
			Where    string `trace:"auth.key_source"`
			ClientIP string `trace:"net.peer.ip"`
			Status   string `trace:"auth.status"`
		}

		apiKey, from := middleware.readKey(c)
		meta := apiKeyMeta{Where: from, ClientIP: c.ClientIP()}

		if apiKey == "" {
			meta.Status = "missing_api_key"
			middleware.trace.ApplyTraceAttributes(span, meta)
			cause := cErr.UnauthorizedApiKey("Missing API Key")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(middleware.config.App.APIKey)) != 1 {
			meta.Status = "invalid_api_key"
			middleware.trace.ApplyTraceAttributes(span, meta)
			cause := cErr.UnauthorizedApiKey("Invalid API Key")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		meta.Status = "success"
		middleware.trace.ApplyTraceAttributes(span, meta)
		middleware.logger.Debug("[APIKey Authenticated]",
			zap.String("from", from),
			zap.String("clientIP", meta.ClientIP),
		)
		end(nil)
		c.Next()
	}
}

func (middleware *APIKey) readKey(c *gin.Context) (key string, from string) {
	// 1) Authorization: Bearer <key>
	if auth := strings.TrimSpace(c.GetHeader("Authorization")); auth != "" {
		if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			tok := strings.TrimSpace(auth[len("Bearer "):])
			return tok, "bearer"
		}
	}

	// 2) X-API-Key
	if x := strings.TrimSpace(c.GetHeader("X-API-Key")); x != "" {
		return x, "x-api-key"
	}
	return "", ""
}
