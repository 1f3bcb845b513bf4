// Leveled logging that can fan out to stderr and to the syslog.
//
// The zero configuration prints errors and worse on stderr.  A program that
// wants syslog output installs an UnderlyingLogger (log/syslog.Writer
// implements it) with SetUnderlying.

package status

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
	LogLevelCritical
)

// Implementations of this must be thread-safe.  None of the printers must
// exit or panic, the name indicates the log level only.
type Logger interface {
	// Print only messages at level l or above
	SetLevel(l LogLevel)

	// Print on this stream, if installed
	SetStderr(w io.Writer)

	// Also print on this underlying (simpler) logger - usually syslog.
	SetUnderlying(w UnderlyingLogger)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
}

// The underlying logger has the simpler interface of log/syslog.Writer.  It
// must be thread-safe.
type UnderlyingLogger interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
}

type StandardLogger struct {
	sync.Mutex
	level      LogLevel
	stderr     io.Writer
	underlying UnderlyingLogger
}

// MT: Constant after initialization, thread-safe.
var defaultLogger Logger = &StandardLogger{
	level:  LogLevelError,
	stderr: os.Stderr,
}

func Default() Logger {
	return defaultLogger
}

func (sl *StandardLogger) SetLevel(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	sl.level = l
}

func (sl *StandardLogger) SetStderr(stderr io.Writer) {
	sl.Lock()
	defer sl.Unlock()

	sl.stderr = stderr
}

func (sl *StandardLogger) SetUnderlying(underlying UnderlyingLogger) {
	sl.Lock()
	defer sl.Unlock()

	sl.underlying = underlying
}

func (sl *StandardLogger) Debugf(format string, args ...any) {
	sl.print(LogLevelDebug, format, args...)
}

func (sl *StandardLogger) Infof(format string, args ...any) {
	sl.print(LogLevelInfo, format, args...)
}

func (sl *StandardLogger) Warningf(format string, args ...any) {
	sl.print(LogLevelWarning, format, args...)
}

func (sl *StandardLogger) Errorf(format string, args ...any) {
	sl.print(LogLevelError, format, args...)
}

func (sl *StandardLogger) Criticalf(format string, args ...any) {
	sl.print(LogLevelCritical, format, args...)
}

func (sl *StandardLogger) print(l LogLevel, format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	if sl.level > l {
		return
	}
	s := fmt.Sprintf(format, args...)
	if sl.stderr != nil {
		fmt.Fprintln(sl.stderr, s)
	}
	if sl.underlying != nil {
		switch l {
		case LogLevelDebug:
			sl.underlying.Debug(s)
		case LogLevelInfo:
			sl.underlying.Info(s)
		case LogLevelWarning:
			sl.underlying.Warning(s)
		case LogLevelError:
			sl.underlying.Err(s)
		case LogLevelCritical:
			sl.underlying.Crit(s)
		}
	}
}
