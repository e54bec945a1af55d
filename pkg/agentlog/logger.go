package agentlog

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// sink is anything that can accept a rendered log line, mirroring the
// standard library's *log.Logger so both it and Ring satisfy it.
type sink interface {
	Println(...interface{})
}

var (
	mu      sync.Mutex
	level   = INFO
	color   = false
	sinks   []sink
	filters []string
	ring    = NewRing(1024)
)

func init() {
	sinks = []sink{log.New(os.Stderr, "", 0), ring}
}

// SetLevelAll sets the level for every sink.
func SetLevelAll(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetColor toggles ANSI coloring of log lines.
func SetColor(c bool) {
	mu.Lock()
	defer mu.Unlock()
	color = c
}

// AddFilter suppresses, in every sink including the ring buffer that
// get_logs dumps, any log line containing the given substring.
func AddFilter(s string) {
	mu.Lock()
	defer mu.Unlock()
	filters = append(filters, s)
}

// Dump returns the most recent log lines, oldest first.
func Dump() []string {
	return ring.Dump()
}

func prologue(l Level, skip int) string {
	msg := l.String() + " "

	_, file, line, ok := runtime.Caller(skip)
	short := file
	if ok {
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		msg += short + ":" + strconv.Itoa(line) + ": "
	}

	if color {
		msg = colorLine + msg
		switch l {
		case DEBUG:
			msg += colorDebug
		case INFO:
			msg += colorInfo
		case WARN:
			msg += colorWarn
		case ERROR:
			msg += colorError
		default:
			msg += colorFatal
		}
	}
	return msg
}

func epilogue() string {
	if color {
		return colorReset
	}
	return ""
}

func output(l Level, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if l > level {
		return
	}

	for _, f := range filters {
		if strings.Contains(msg, f) {
			return
		}
	}

	for _, s := range sinks {
		s.Println(msg)
	}
}

func logf(l Level, format string, args ...interface{}) {
	output(l, prologue(l, 4)+fmt.Sprintf(format, args...)+epilogue())
}

func Debug(format string, args ...interface{}) { logf(DEBUG, format, args...) }
func Info(format string, args ...interface{})  { logf(INFO, format, args...) }
func Warn(format string, args ...interface{})  { logf(WARN, format, args...) }
func Error(format string, args ...interface{}) { logf(ERROR, format, args...) }

// Errorln logs err at ERROR; a nil err logs nothing.
func Errorln(err error) {
	if err == nil {
		return
	}
	logf(ERROR, "%v", err)
}

// Fatal logs at FATAL and terminates the process; used for unrecoverable
// startup errors (e.g. failure to elect a hardware manager).
func Fatal(format string, args ...interface{}) {
	logf(FATAL, format, args...)
	os.Exit(1)
}
