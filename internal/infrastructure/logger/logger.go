package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// Logger adapts slog to the printf-style logger injected into usecases.
type Logger struct {
	*slog.Logger
	exit func(int)
}

var _ usecasecontract.IAppLogger = (*Logger)(nil)

// New creates a text logger on stdout with the given slog level
// (-4 debug, 0 info, 4 warn, 8 error).
func New(level int) *Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
		exit:   os.Exit,
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Fatalf is equivalent to Errorf followed by os.Exit(1).
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
	l.exit(1)
}
