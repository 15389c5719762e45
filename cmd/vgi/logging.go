package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"

	"github.com/eve-tools/vgi/state"
)

// setupLogging routes slog to a tinted stderr handler fanned out to a
// plain per-run file under ~/.config/vgi/logs. The file handler
// always records debug level; -debug raises the console too. Logging
// degrades to stderr-only rather than failing the run.
func setupLogging(cfg *rootConfig) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	stderrH := tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(stderrH))

	logsDir, err := state.LogsDir()
	if err != nil {
		slog.Warn("no log directory", "err", err)
		return
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		slog.Warn("cannot create log directory", "dir", logsDir, "err", err)
		return
	}
	path := filepath.Join(logsDir, "run-"+time.Now().Format("20060102-150405")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("cannot open log file", "path", path, "err", err)
		return
	}
	cfg.LogPath = path
	cfg.CloseLog = f.Close
	fileH := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(slogmulti.Fanout(stderrH, fileH)))
}
