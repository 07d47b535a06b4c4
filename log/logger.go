package log

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/neuronlabs/uni-logger"

	"github.com/neuronlabs/includes/errors"
)

const (
	// LDEBUG3 is the logger DEBUG3 level.
	LDEBUG3 = unilogger.DEBUG3
	// LDEBUG2 is the logger DEBUG2 level.
	LDEBUG2 = unilogger.DEBUG2
	// LDEBUG is the logger DEBUG level.
	LDEBUG = unilogger.DEBUG
	// LINFO is the logger INFO level.
	LINFO = unilogger.INFO
	// LWARNING is the logger WARNING level.
	LWARNING = unilogger.WARNING
	// LERROR is the logger ERROR level.
	LERROR = unilogger.ERROR
	// LCRITICAL is the logger CRITICAL level.
	LCRITICAL = unilogger.CRITICAL
	// LUNKNOWN is the unspecified logger level.
	LUNKNOWN = unilogger.UNKNOWN
)

var (
	// ErrLogger is the root error classification for the logger.
	ErrLogger = errors.New("logger")
	// ErrUnknownLevel is the error classification for unknown logger levels.
	ErrUnknownLevel = errors.Wrap(ErrLogger, "unknown level")
	// ErrNotLevelSetter is the error classification when the logger doesn't allow to set its level.
	ErrNotLevelSetter = errors.Wrap(ErrLogger, "not a level setter")
)

var (
	logger         unilogger.LeveledLogger
	currentLevel   = LINFO
	debugLeveled   unilogger.DebugLeveledLogger
	isDebugLeveled bool
)

var levelNames = map[string]unilogger.Level{
	"debug3":   LDEBUG3,
	"debug2":   LDEBUG2,
	"debug":    LDEBUG,
	"info":     LINFO,
	"warning":  LWARNING,
	"error":    LERROR,
	"critical": LCRITICAL,
}

// ParseLevel parses the level from its name. Returns LUNKNOWN for unrecognized names.
func ParseLevel(level string) unilogger.Level {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return LUNKNOWN
	}
	return l
}

// Default creates and sets new unilogger.BasicLogger with writer to 'os.Stderr'.
func Default() {
	New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// New creates new unilogger.BasicLogger that writes to provided 'out' io.Writer
// with specific 'prefix' and provided 'flags'.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// SetLogger sets the 'log' as the current logger.
func SetLogger(log unilogger.LeveledLogger) {
	logger = log

	if log == nil {
		debugLeveled, isDebugLeveled = nil, false
		return
	}

	if depth, ok := log.(unilogger.OutputDepthGetter); ok {
		if setter, ok := log.(unilogger.OutputDepthSetter); ok {
			setter.SetOutputDepth(depth.GetOutputDepth() + 1)
		}
	}

	if lvlSetter, ok := log.(unilogger.LevelSetter); ok {
		lvlSetter.SetLevel(currentLevel)
	}

	debugLeveled, isDebugLeveled = log.(unilogger.DebugLeveledLogger)
	Debugf("New logger set with level: %s", currentLevel)

	// Module loggers without their own logger write through the package level functions.
	for _, m := range modules {
		m.SetLevel(currentLevel)
	}
}

// SetLevel sets the level if possible for the logger.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return errors.NewDet(ErrUnknownLevel, "can't set unknown logger level")
	}

	if level == currentLevel {
		Debug3f("Current level the same as the provided: '%s' level.", level)
		return nil
	}

	currentLevel = level
	for _, m := range modules {
		m.SetLevel(level)
	}
	if logger == nil {
		return nil
	}

	lvl, ok := logger.(unilogger.LevelSetter)
	if !ok {
		return errors.NewDet(ErrNotLevelSetter, "logger doesn't implement LevelSetter interface")
	}
	lvl.SetLevel(currentLevel)
	return nil
}

// Level returns current logger Level.
func Level() unilogger.Level {
	return currentLevel
}

// Logger returns current logger.
func Logger() unilogger.LeveledLogger {
	return logger
}

// Debug writes the LDEBUG level log.
func Debug(args ...interface{}) {
	if logger != nil {
		logger.Debug(args...)
	}
}

// Debugf writes the formatted LDEBUG level log.
func Debugf(format string, args ...interface{}) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

// Debug2f writes the formatted LDEBUG2 level log.
func Debug2f(format string, args ...interface{}) {
	if logger == nil {
		return
	}
	if isDebugLeveled {
		debugLeveled.Debug2f(format, args...)
		return
	}
	if currentLevel <= LDEBUG2 {
		logger.Debugf(format, args...)
	}
}

// Debug3f writes the formatted LDEBUG3 level log.
func Debug3f(format string, args ...interface{}) {
	if logger == nil {
		return
	}
	if isDebugLeveled {
		debugLeveled.Debug3f(format, args...)
		return
	}
	if currentLevel <= LDEBUG3 {
		logger.Debugf(format, args...)
	}
}

// Info writes the LINFO level log.
func Info(args ...interface{}) {
	if logger != nil {
		logger.Info(args...)
	}
}

// Infof writes the formatted LINFO level log.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Warningf writes the formatted warning level log.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Errorf writes the formatted LERROR level log.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}
