package logger

import (
	"io"
	"log/slog"
	"os"
)

// New 根据运行环境创建 slog 日志：prod 输出 JSON，其余环境输出文本并打开 Debug 级别
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter 与 New 相同，但写入指定的 io.Writer
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
