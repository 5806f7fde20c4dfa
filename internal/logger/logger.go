package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLogSize is the size above which Init moves the old log aside
const maxLogSize = 10 * 1024 * 1024

var (
	mu      sync.RWMutex
	sugar   = zap.NewNop().Sugar()
	logFile *os.File
	logPath string
)

// Init opens debug.log in dir and routes all log calls to it.
// An empty dir means ~/.pyramid-climb. Until Init is called, logging is a no-op.
func Init(dir string) error {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".pyramid-climb")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, "debug.log")
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backupPath := filepath.Join(dir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(f), zapcore.DebugLevel)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	mu.Lock()
	if logFile != nil {
		_ = sugar.Sync()
		_ = logFile.Close()
	}
	sugar, logFile, logPath = l.Sugar(), f, path
	mu.Unlock()

	LogInfo("Logger initialized, log file: %s", path)
	return nil
}

// Close flushes and closes the log file; later calls are no-ops until the next Init
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}
	_ = sugar.Sync()
	_ = logFile.Close()
	sugar, logFile = zap.NewNop().Sugar(), nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	current().Infof(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	current().Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	current().Errorf("panic: %v\n%s", r, debug.Stack())
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}
