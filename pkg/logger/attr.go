package logger

import (
	"log/slog"
	"time"
)

// Group groups attributes under a common key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error returns an "error" attribute. A nil error yields an empty attribute,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

func FileID(id string) slog.Attr {
	return slog.String("file_id", id)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func TaskID(id any) slog.Attr {
	return slog.Any("task_id", id)
}

func TaskType(name string) slog.Attr {
	return slog.String("task_type", name)
}

func Width(w int) slog.Attr {
	return slog.Int("width", w)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
