package logger

import (
	"context"
	"io"
	"os"
	"time"

	"hotel/shared/constant"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger installs the global logger. A terminal gets human-readable output,
// anything else (containers, log shippers) gets one JSON object per line.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(writer(os.Stdout)).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

func writer(out *os.File) io.Writer {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return out
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Err(err).Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies a level name such as "debug" or "warn". Unknown names fall back to info.
func SetLogLevel(logLevel string) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("loglevel", logLevel).Msgf("Unknown log level, using %s", defaultLevel)

		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("Log level set")
}

// FromContext returns the global logger tagged with the request id carried by ctx, if any.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := log.Logger

	if requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok && requestID != "" {
		l = l.With().Str("request_id", requestID).Logger()
	}

	return &l
}
