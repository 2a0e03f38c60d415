package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger: level-filtered, with sub-second
// timestamps so generation and render phases can be eyeballed from the
// log alone.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// logTimed logs the formatted message with the elapsed time since start
// appended, e.g. "Generated 12 rooms (312ms)".
func logTimed(l *log.Logger, start time.Time, format string, args ...any) {
	elapsed := time.Since(start).Round(time.Millisecond)
	l.Infof(format+" (%s)", append(args, elapsed)...)
}

type loggerKey struct{}

// withLogger attaches l to the context for retrieval in command run
// functions.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or the package
// default when none is attached, so commands never need a nil check.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
