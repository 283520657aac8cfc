package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalMu  sync.RWMutex
	globalLog = newLogger(DefaultConfig())
)

// InitGlobalLogger replaces the process wide logger. Calls made before it
// write to stderr at info level.
func InitGlobalLogger(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	l := newLogger(cfg)

	globalMu.Lock()
	globalLog = l
	globalMu.Unlock()
}

func newLogger(cfg *Config) zerolog.Logger {
	writers := make([]io.Writer, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		switch target {
		case "console":
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
				NoColor:    !cfg.Colorful,
			})
		case "file":
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			})
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func current() *zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	l := globalLog

	return &l
}

func Debug(msg string, keyvals ...any) {
	current().Debug().Fields(keyvals).Msg(msg)
}

func Info(msg string, keyvals ...any) {
	current().Info().Fields(keyvals).Msg(msg)
}

func Warn(msg string, keyvals ...any) {
	current().Warn().Fields(keyvals).Msg(msg)
}

func Error(msg string, keyvals ...any) {
	current().Error().Fields(keyvals).Msg(msg)
}
