// Пакет ctxmeta — метаданные запроса, которые едут через context.Context
// (request_id, trace_id, span_id). HTTP-слой их кладёт, логгер достаёт;
// друг о друге они не знают.
package ctxmeta

import "context"

type ctxKey string

const (
	// KeyRequestID — ключ request_id в контексте.
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (пустой id и nil-контекст — без изменений).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// LogFields — пары ключ/значение для структурного логгера; отсутствующие поля пропускаются.
func LogFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if rid, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if tr, ok := TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", tr)
	}
	if sp, ok := SpanIDFromContext(ctx); ok {
		fields = append(fields, "span_id", sp)
	}
	return fields
}
