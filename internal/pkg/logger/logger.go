package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// TraceIDKey 定义 Context 中的 Key
const TraceIDKey = "trace_id"

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog, JSON 输出到 stdout
func InitLogger(level string) {
	h := slog.NewJSONHandler(LogWriter, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(&ContextHandler{Handler: h}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ContextHandler 从 ctx 中提取 trace_id
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(slog.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
