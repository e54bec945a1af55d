// Package metrics is the agent's uniform timer/counter/gauge/meter facade.
// Name parts are joined with a delimiter the way ron.Filter.String() joins
// its predicate parts, and emission is dispatched to a pluggable Backend
// (noop, statsd, or an in-memory ring for tests) the way pkg/agentlog
// dispatches a rendered line to more than one sink.
package metrics

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const delimiter = "."

// Backend is the pluggable emission target. Implementations receive a
// fully-joined metric name and must not mutate value.
type Backend interface {
	Gauge(name string, value float64)
	Counter(name string, value float64, sampleRate float64)
	Timer(name string, valueMS float64)
	Meter(name string, value float64)
}

// Config controls how the Logger composes metric name prefixes.
type Config struct {
	GlobalPrefix        string
	PrependUUID         bool
	PrependHost         bool
	PrependHostReverse  bool
	NodeUUID            string
	Hostname            string
}

// Logger is the facade callers use to emit metrics. It is safe for
// concurrent use.
type Logger struct {
	backend Backend
	prefix  []string
}

// New builds a Logger with its prefix precomputed once at construction:
// global prefix (if set), node UUID (if PrependUUID), hostname (if
// PrependHost; dot-reversed if PrependHostReverse), then caller-provided
// parts at emission time.
func New(backend Backend, cfg Config) *Logger {
	var prefix []string

	if cfg.GlobalPrefix != "" {
		prefix = append(prefix, cfg.GlobalPrefix)
	}
	if cfg.PrependUUID && cfg.NodeUUID != "" {
		prefix = append(prefix, cfg.NodeUUID)
	}
	if cfg.PrependHost && cfg.Hostname != "" {
		host := cfg.Hostname
		if cfg.PrependHostReverse {
			host = reverseDotted(host)
		}
		prefix = append(prefix, host)
	}

	return &Logger{backend: backend, prefix: prefix}
}

func reverseDotted(host string) string {
	parts := strings.Split(host, delimiter)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, delimiter)
}

func (l *Logger) name(parts []string) string {
	all := make([]string, 0, len(l.prefix)+len(parts))
	all = append(all, l.prefix...)
	all = append(all, parts...)
	return strings.Join(all, delimiter)
}

func (l *Logger) Gauge(parts []string, value float64) {
	l.backend.Gauge(l.name(parts), value)
}

func (l *Logger) Meter(parts []string, value float64) {
	l.backend.Meter(l.name(parts), value)
}

func (l *Logger) Timer(parts []string, valueMS float64) {
	l.backend.Timer(l.name(parts), valueMS)
}

// Counter emits a counter metric under name_parts + ["counter"]. sampleRate,
// if given, must be in [0,1]; a rate below 1 causes probabilistic sampling
// with that probability, and the rate is still passed to the backend so it
// can be annotated on the wire.
func (l *Logger) Counter(parts []string, value float64, sampleRate ...float64) error {
	rate := 1.0
	if len(sampleRate) > 0 {
		rate = sampleRate[0]
		if rate < 0 || rate > 1 {
			return fmt.Errorf("sample_rate %v out of range [0,1]", rate)
		}
	}

	if rate < 1 && rand.Float64() >= rate {
		return nil
	}

	counterParts := make([]string, 0, len(parts)+1)
	counterParts = append(counterParts, parts...)
	counterParts = append(counterParts, "counter")

	l.backend.Counter(l.name(counterParts), value, rate)
	return nil
}

// Timed returns a stop function that, when called, emits a timer under
// name_parts with the elapsed time since Timed was called. Call it with
// defer so the timer fires regardless of whether the caller's operation
// errored.
func (l *Logger) Timed(parts ...string) func() {
	start := time.Now()
	return func() {
		l.Timer(parts, float64(time.Since(start))/float64(time.Millisecond))
	}
}
