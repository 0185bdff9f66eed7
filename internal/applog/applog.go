// Package applog provides the engine-level structured logger: a
// zerodha/logf singleton writing to stdout and, optionally, a
// timestamped log file under the user's home directory. This is the
// operational log (run start/stop, config loaded, report written);
// pkg/applog is the separate hot-path/debug logger used inside the
// force/quadtree/engine packages.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"github.com/zerodha/logf"
)

var (
	globalLogger logf.Logger
	once         sync.Once
	logFile      *os.File
	defaultOpts  = logf.Opts{
		EnableCaller:    true,
		TimestampFormat: "15:04:05",
		EnableColor:     false,
		Level:           logf.InfoLevel,
	}
	// UserCurrentFunc is overridable for tests.
	UserCurrentFunc = user.Current
)

// GetDefaultOpts returns a copy of the default logger options.
func GetDefaultOpts() logf.Opts {
	return defaultOpts
}

// InitFileLogger sets up the global logger with file output under
// ~/.nbody2d/logs, in addition to stdout.
func InitFileLogger(configuredLevel string, appName string) (*logf.Logger, error) {
	usr, err := UserCurrentFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	logsDir := filepath.Join(usr.HomeDir, ".nbody2d", "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory '%s': %w", logsDir, err)
	}

	currentTime := time.Now().Format("2006-01-02_15-04-05")
	logFileName := fmt.Sprintf("%s-%s.log", appName, currentTime)
	fullLogFilePath := filepath.Join(logsDir, logFileName)

	lg := GetLogger(configuredLevel, fullLogFilePath)
	lg.Info("file logger initialized", "app", appName, "path", fullLogFilePath, "level", configuredLevel)
	return lg, nil
}

// GetLogger returns the singleton logf.Logger instance, created on
// first call. level and filePath are only effective on that first
// call; later calls return the already-initialized logger.
func GetLogger(level string, filePath ...string) *logf.Logger {
	once.Do(func() {
		currentOpts := GetDefaultOpts()
		var logLevel logf.Level
		switch level {
		case "debug":
			logLevel = logf.DebugLevel
		case "info":
			logLevel = logf.InfoLevel
		case "warn":
			logLevel = logf.WarnLevel
		case "error":
			logLevel = logf.ErrorLevel
		case "fatal":
			logLevel = logf.FatalLevel
		default:
			logLevel = currentOpts.Level
		}
		currentOpts.Level = logLevel

		writers := []io.Writer{os.Stdout}
		if len(filePath) > 0 && filePath[0] != "" {
			var err error
			logFile, err = os.OpenFile(filePath[0], os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				log.Printf("[applog] failed to open log file '%s': %v. continuing with stdout only.", filePath[0], err)
			} else {
				writers = append(writers, logFile)
			}
		}
		currentOpts.Writer = io.MultiWriter(writers...)
		globalLogger = logf.New(currentOpts)
	})
	return &globalLogger
}

// Reset clears the singleton; tests only.
func Reset() {
	once = sync.Once{}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	globalLogger = logf.Logger{}
}
