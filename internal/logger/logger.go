// Package logger provides the process-wide leveled loggers used across the
// backend. It mirrors the app's PocketBase lifecycle: Debug/Info/Error are
// plain *log.Logger values anyone can Printf into directly, while the
// LogX helpers give call sites a terser, loosely-typed entry point that
// accepts either a printf-style format plus args or a message plus
// key/value pairs.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pocketbase/pocketbase"
)

var (
	Debug = log.New(os.Stdout, color.New(color.FgCyan).Sprint("DEBUG: "), log.LstdFlags)
	Info  = log.New(os.Stdout, color.New(color.FgGreen).Sprint("INFO:  "), log.LstdFlags)
	Error = log.New(os.Stderr, color.New(color.FgRed).Sprint("ERROR: "), log.LstdFlags)

	mu      sync.Mutex
	logFile *os.File
)

// InitLog wires file-based logging when the application store enables it,
// called from the PocketBase OnServe hook once configuration is loaded.
func InitLog(pb *pocketbase.PocketBase) {
	mu.Lock()
	defer mu.Unlock()

	enabled, _ := pb.Store().Get("FILE_LOGGING_ENABLED").(bool)
	if !enabled {
		return
	}

	path, _ := pb.Store().Get("LOG_FILE_PATH").(string)
	if path == "" {
		path = "logs/app.log"
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Error.Printf("failed to open log file %s: %v", path, err)
		return
	}

	logFile = f
	writer := io.MultiWriter(os.Stdout, f)
	Debug.SetOutput(writer)
	Info.SetOutput(writer)
	Error.SetOutput(io.MultiWriter(os.Stderr, f))
}

// Cleanup closes the file-logging sink, if any. Safe to call multiple times.
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// LogDebug logs at debug level. See format for the accepted shapes.
func LogDebug(msg string, args ...interface{}) {
	Debug.Println(format(msg, args...))
}

// LogInfo logs at info level.
func LogInfo(msg string, args ...interface{}) {
	Info.Println(format(msg, args...))
}

// LogWarning logs at info level with a WARN marker; there is no separate
// warning logger, matching how the rest of the codebase treats warnings
// as informational but worth flagging.
func LogWarning(msg string, args ...interface{}) {
	Info.Println("WARN " + format(msg, args...))
}

// LogError logs at error level.
func LogError(msg string, args ...interface{}) {
	Error.Println(format(msg, args...))
}

// format accepts either a printf-style string with matching verbs, or a
// bare message followed by alternating key/value pairs, matching both
// call styles used throughout the codebase.
func format(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}

	if strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	return b.String()
}
