package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/rs/zerolog"
)

// Init builds the base logger for the process and installs it as the std logger output.
func Init(cfg *config.Config) *zerolog.Logger {
	l := New(os.Stdout, cfg)
	log.SetFlags(0)
	log.SetOutput(l)
	return l
}

// New builds a logger writing to out. Production gets JSON at info level,
// everything else a colored console writer at debug level with caller info.
func New(out io.Writer, cfg *config.Config) *zerolog.Logger {
	level := zerolog.DebugLevel
	if cfg.IsProduction() {
		level = zerolog.InfoLevel
	}

	var baseLogger zerolog.Logger

	if cfg.IsProduction() {
		baseLogger = zerolog.New(out)
	} else {
		baseLogger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			PartsOrder: []string{
				"time", "level", "caller", "service", "env", "message", "err",
			},
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%s]", i))
			},
			FormatCaller: func(caller any) string {
				return fmt.Sprintf("(%s)", caller)
			},
		})
	}

	baseLogger = baseLogger.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Env).
		Logger()

	if !cfg.IsProduction() {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	return &baseLogger
}
