package telemetry

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"
	"time"

	"skusync/config"
	"skusync/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{TracerProvider: nil, ServiceName: ""}, nil
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.Telemetry.Trace.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  60 * time.Second,
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		log.Fatalf("failed to create otlp exporter: %v", err)
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	return &Trace{
		TracerProvider: tp,
		ServiceName:    conf.App.Name,
	}, nil
}

func (t *Trace) StartSpanForLayer(
	ctx context.Context,
	spanName core.TraceSpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	var tracer trace.Tracer
	if t.TracerProvider == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	} else {
		tracer = t.TracerProvider.Tracer(t.ServiceName)
	}
	return tracer.Start(ctx, string(spanName), opts...)
}

// Service 層專用（自動用呼叫者方法名作為 span 名稱）
func (t *Trace) StartSpanAuto(ctx context.Context, name ...string) (context.Context, trace.Span) {
	n := prettifyFuncName(callerFuncName(4))
	if n == "" {
		n = "unknown"
	}
	if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
		n = name[0]
	}
	return t.StartSpanForLayer(ctx, core.TraceSpanName(n))
}

// 通用入口：同一個 API 同時支援 *gin.Context 或 context.Context
func (t *Trace) startSpanAny(parent interface{}, name ...string) (context.Context, trace.Span) {
	switch p := parent.(type) {
	case *gin.Context:
		ctx := t.GetTraceContext(p)
		n := spanNameFromGin(p)
		if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
			n = name[0]
		}
		ctx, span := t.StartSpanForLayer(ctx, core.TraceSpanName(n))
		p.Set(core.ContextTraceKey, ctx)
		return ctx, span
	case context.Context:
		return t.StartSpanAuto(p, name...)
	default:
		// 不認得就開一個孤立的（不建議，但避免崩潰）
		ctx := context.Background()
		n := "unknown"
		if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
			n = name[0]
		}
		return t.StartSpanForLayer(ctx, core.TraceSpanName(n))
	}
}

// 統一結束 span（含錯誤標註）
func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// For 下游所有 middleware/service 使用，統一取得最新 ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if ctx, ok := c.Get(core.ContextTraceKey); ok {
		return ctx.(context.Context)
	}
	return c.Request.Context()
}

// ApplyTraceAttributes 依 struct 的 trace tag 批次寫入 span 屬性
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj interface{}) {
	if span == nil || obj == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("ApplyTraceAttributes panic: %v", r))
		}
	}()
	val := reflect.ValueOf(obj)
	typ := reflect.TypeOf(obj)

	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}

	for i := 0; i < typ.NumField(); i++ {
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("trace")
		if tag == "" {
			continue
		}
		tag = strings.TrimSuffix(tag, ",omitempty")

		fieldVal := val.Field(i)
		if !fieldVal.IsValid() || !fieldVal.CanInterface() {
			continue
		}

		switch fieldVal.Kind() {
		case reflect.String:
			span.SetAttributes(attribute.String(tag, fieldVal.String()))
		case reflect.Bool:
			span.SetAttributes(attribute.Bool(tag, fieldVal.Bool()))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			span.SetAttributes(attribute.Int64(tag, fieldVal.Int()))
		case reflect.Float32, reflect.Float64:
			span.SetAttributes(attribute.Float64(tag, fieldVal.Float()))
		case reflect.Slice, reflect.Array:
			if fieldVal.Type().Elem().Kind() == reflect.String {
				var strs []string
				for j := 0; j < fieldVal.Len(); j++ {
					strs = append(strs, fieldVal.Index(j).String())
				}
				span.SetAttributes(attribute.StringSlice(tag, strs))
			}
		case reflect.Struct:
			t.ApplyTraceAttributes(span, fieldVal.Interface()) // 遞迴
		case reflect.Ptr:
			if !fieldVal.IsNil() {
				t.ApplyTraceAttributes(span, fieldVal.Interface())
			}
		}
	}
}

func (t *Trace) WithSpan(parent interface{}, name ...string) (context.Context, trace.Span, func(error)) {
	ctx, span := t.startSpanAny(parent, name...)
	end := func(err error) {
		t.EndSpan(span, err)
	}
	return ctx, span, end
}

// ==== 共用：名稱處理 ====

func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	r := strings.NewReplacer("(*", "", "(", "", ")", "")
	return r.Replace(full)
}

func spanNameFromGin(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
