package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"elevbank/src/types"
)

// InitLogger sets up global logging with compact time format and file:line sources.
// When logPath is set, output goes to stdout and the file.
func InitLogger(level slog.Level, logPath string) (io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func FormatEvent(event types.StatusEvent) string {
	switch event.Kind {
	case types.Moved:
		return fmt.Sprintf("Car %d moving %s to %d", event.CarID, event.Direction, event.Floor)
	case types.Stopped:
		return fmt.Sprintf("Car %d stopping at %d", event.CarID, event.Floor)
	case types.Reversed:
		return fmt.Sprintf("Car %d switching to %s at %d", event.CarID, event.Direction, event.Floor)
	case types.Parked:
		return fmt.Sprintf("Car %d idle at %d", event.CarID, event.Floor)
	}
	return "Unknown"
}
