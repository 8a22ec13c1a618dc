package logger

type LogLevel int

const (
	LogLevelDebug  LogLevel = 0
	LogLevelInfo   LogLevel = 1
	LogLevelWarn   LogLevel = 2
	LogLevelError  LogLevel = 3
	LogLevelSilent LogLevel = 4
)

type Logger interface {
	SetLogLevel(level LogLevel)
	GetLogLevel() LogLevel
	Debug(v ...any)
	Debugf(format string, v ...any)
	Info(v ...any)
	Infof(format string, v ...any)
	Warn(v ...any)
	Warnf(format string, v ...any)
	Error(v ...any)
	Errorf(format string, v ...any)
	Print(v ...any)
	Printf(format string, v ...any)
	Step(message string)
}
