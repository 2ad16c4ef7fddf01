package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanAPIKeyMiddleware   TraceSpanName = "api_key_middleware"
	SpanSyncRun            TraceSpanName = "sync_run"
	SpanFeedFetch          TraceSpanName = "feed_fetch"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricSyncRowsTotal       MetricName = "sync_rows_total"
	MetricSyncRunsTotal       MetricName = "sync_runs_total"
	MetricRemoteCallDuration  MetricName = "remote_call_duration_seconds"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint  MetricLabelName = "endpoint"
	MetricLabelStatus    MetricLabelName = "status"
	MetricLabelOutcome   MetricLabelName = "outcome"
	MetricLabelOperation MetricLabelName = "operation"
	MetricLabelFeed      MetricLabelName = "feed"
)

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceRequestMeta struct {
	Method     string `trace:"http.method"`
	Path       string `trace:"http.path"`
	FullPath   string `trace:"http.route"`
	Query      string `trace:"http.query,omitempty"`
	Body       string `trace:"http.request.body,omitempty"`
	Host       string `trace:"http.host"`
	UserAgent  string `trace:"http.user_agent"`
	ContentLen int64  `trace:"http.request.content_length,omitempty"`
	Proto      string `trace:"network.protocol.version"`
	ClientIP   string `trace:"net.peer.ip"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

// 同步管線用的 span 屬性
type TraceSyncRunMeta struct {
	RunID   string `trace:"sync.run_id"`
	Feed    string `trace:"sync.feed"`
	Total   int    `trace:"sync.rows.total,omitempty"`
	Created int    `trace:"sync.rows.created,omitempty"`
	Updated int    `trace:"sync.rows.updated,omitempty"`
	Skipped int    `trace:"sync.rows.skipped,omitempty"`
	Failed  int    `trace:"sync.rows.failed,omitempty"`
}

type TraceSyncRowMeta struct {
	SKU     string `trace:"sync.row.sku"`
	Outcome string `trace:"sync.row.outcome,omitempty"`
}

type TraceRemoteCallMeta struct {
	Operation  string `trace:"remote.operation"`
	URL        string `trace:"http.url"`
	StatusCode int    `trace:"http.status_code,omitempty"`
}
