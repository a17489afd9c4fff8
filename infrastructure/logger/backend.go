package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// normalLogSize is the initial capacity of a log line buffer
const normalLogSize = 512

// logsBuffer is the number of formatted log lines that may be queued before
// writers block
const logsBuffer = 256

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile modifies the logger output to include full path and line number
	// of the logging callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile modifies the logger output to include filename and line number
	// of the logging callsite, e.g. main.go:123. takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// defaultFlags is read from the LOGFLAGS environment variable. It is a
// variable rather than set in init() because BackendLog is initialized from it.
var defaultFlags = flagsFromEnvironment(os.Getenv("LOGFLAGS"))

// flagsFromEnvironment parses a comma separated list of logger flags
func flagsFromEnvironment(value string) (flags uint32) {
	for _, flag := range strings.Split(value, ",") {
		switch strings.TrimSpace(flag) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

// Backend is a logging backend. Subsystem loggers created from the backend
// queue formatted lines on a channel, and a single goroutine started by Run
// writes every line to all writers whose level admits it.
type Backend struct {
	flag      uint32
	isRunning uint32
	writers   []logWriter
	writeChan chan logEntry
	closeOnce sync.Once
	done      chan struct{}
}

type logWriter struct {
	io.WriteCloser
	level Level
}

// NewBackendWithFlags configures a Backend to use the specified flags rather than using
// the package's defaults as determined through the LOGFLAGS environment
// variable.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{
		flag:      flags,
		writeChan: make(chan logEntry, logsBuffer),
		done:      make(chan struct{}),
	}
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

// AddLogFile adds a rotated log file receiving lines at logLevel and above,
// with the default rotation settings. The file and its directory are created
// if they do not exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds a writer receiving lines at logLevel and above
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.writers = append(b.writers, logWriter{WriteCloser: writer, level: logLevel})
	return nil
}

// AddLogFileWithCustomRotator adds a log file receiving lines at logLevel and
// above, rotated once it grows past thresholdKB, keeping maxRolls old files.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	return b.AddLogWriter(r, logLevel)
}

// Run launches the logger backend in a separate goroutine. It may only be
// called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	go func() {
		defer close(b.done)
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		b.runBlocking()
	}()
	return nil
}

func (b *Backend) runBlocking() {
	for entry := range b.writeChan {
		for _, writer := range b.writers {
			if entry.level >= writer.level {
				_, _ = writer.Write(entry.log)
			}
		}
	}
}

// IsRunning returns true if backend.Run() has been called and false if it hasn't.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close waits for all queued lines to be written and then closes every
// writer. Loggers must not be used after Close.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		wasRunning := b.IsRunning()
		atomic.StoreUint32(&b.isRunning, 0)
		close(b.writeChan)
		if wasRunning {
			<-b.done
		}
		for _, writer := range b.writers {
			_ = writer.Close()
		}
	})
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger is off until a level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelOff, subsystemTag, b, b.writeChan}
}
