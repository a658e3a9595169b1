package gallery

import (
	"context"
	"log/slog"
)

// Notice is a short user-facing message, the terminal counterpart of a toast.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier writes notices through slog.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	level := slog.LevelInfo
	if n.Destructive {
		level = slog.LevelWarn
	}
	log.Log(context.Background(), level, n.Title, slog.String("description", n.Description))
}
