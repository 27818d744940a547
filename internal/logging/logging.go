// Package logging builds the zerolog logger used by the dialog. The terminal
// belongs to the dialog while it is shown, so logs only go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/evgfitil/pleasewait/internal/config"
)

// New returns a logger writing to cfg.File at cfg.Level, and a function that
// closes the file. An empty cfg.File yields a disabled logger.
func New(cfg config.LogConfig) (zerolog.Logger, func() error, error) {
	if cfg.File == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	return newLogger(f, cfg.Level), f.Close, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
