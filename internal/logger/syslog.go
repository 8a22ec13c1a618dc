package logger

import (
	"fmt"
	"log/syslog"
	"os"
)

// The subset of *syslog.Writer used for output.
type syslogWriter interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Close() error
}

type SyslogLogger struct {
	writer syslogWriter

	level        LogLevel
	stepNumber   uint
	stepsEnabled bool
}

func NewSyslogLogger(tag string) (*SyslogLogger, error) {
	w, err := syslog.New(syslog.LOG_DEBUG|syslog.LOG_USER, tag)
	if err != nil {
		return nil, err
	}

	return newSyslogLoggerWithWriter(w), nil
}

func newSyslogLoggerWithWriter(w syslogWriter) *SyslogLogger {
	return &SyslogLogger{
		writer:       w,
		level:        LogLevelInfo,
		stepsEnabled: os.Getenv("LINKFARM_DISABLE_STEPS") == "",
	}
}

func (l *SyslogLogger) SetLogLevel(level LogLevel) {
	l.level = level
}

func (l *SyslogLogger) GetLogLevel() LogLevel {
	return l.level
}

// Send msg at the priority matching level, unless the
// logger is configured above it.
func (l *SyslogLogger) emit(level LogLevel, msg string) {
	if l.level > level {
		return
	}

	switch level {
	case LogLevelDebug:
		_ = l.writer.Debug(msg)
	case LogLevelWarn:
		_ = l.writer.Warning(msg)
	case LogLevelError:
		_ = l.writer.Err(msg)
	default:
		_ = l.writer.Info(msg)
	}
}

func (l *SyslogLogger) Debug(v ...any) { l.emit(LogLevelDebug, fmt.Sprint(v...)) }

func (l *SyslogLogger) Debugf(format string, v ...any) {
	l.emit(LogLevelDebug, fmt.Sprintf(format, v...))
}

// Print is never filtered by level.
func (l *SyslogLogger) Print(v ...any) { _ = l.writer.Info(fmt.Sprint(v...)) }

func (l *SyslogLogger) Printf(format string, v ...any) {
	_ = l.writer.Info(fmt.Sprintf(format, v...))
}

func (l *SyslogLogger) Info(v ...any) { l.emit(LogLevelInfo, fmt.Sprint(v...)) }

func (l *SyslogLogger) Infof(format string, v ...any) {
	l.emit(LogLevelInfo, fmt.Sprintf(format, v...))
}

func (l *SyslogLogger) Warn(v ...any) { l.emit(LogLevelWarn, fmt.Sprint(v...)) }

func (l *SyslogLogger) Warnf(format string, v ...any) {
	l.emit(LogLevelWarn, fmt.Sprintf(format, v...))
}

func (l *SyslogLogger) Error(v ...any) { l.emit(LogLevelError, fmt.Sprint(v...)) }

func (l *SyslogLogger) Errorf(format string, v ...any) {
	l.emit(LogLevelError, fmt.Sprintf(format, v...))
}

func (l *SyslogLogger) Step(message string) {
	if !l.stepsEnabled {
		l.Info(message)
		return
	}

	if l.level > LogLevelInfo {
		return
	}

	l.stepNumber++
	l.emit(LogLevelInfo, fmt.Sprintf("%v. %v", l.stepNumber, message))
}

func (l *SyslogLogger) Close() error {
	return l.writer.Close()
}
