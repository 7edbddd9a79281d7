// Package logger provides structured logging and in-process metrics for the
// checker client.
//
// Logging is backed by logrus. Entries are JSON by default (timestamp, level,
// message and the structured fields) and can be switched to logrus' text
// formatter for terminals. A Logger also satisfies resty's logger interface so
// HTTP client warnings, including retry notices, end up in the same stream.
//
// Example usage:
//
//	log := logger.New(logger.LevelDebug, os.Stderr)
//	log.Debug("requesting report page", logger.Fields{
//	    "network": "ERA",
//	    "url":     url,
//	})
//
//	metrics := logger.NewMetrics()
//	metrics.IncrCounter("fetch.attempts")
//	metrics.RecordTiming("fetch.ERA", elapsed)
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Format selects the entry encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	base *logrus.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

// ParseLevel converts names such as "debug" or "WARN" into a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(name))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn, "WARNING":
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New creates a JSON logger writing entries at or above level to output
func New(level Level, output io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(output)
	base.SetLevel(level.logrus())
	l := &Logger{base: base}
	l.SetFormat(FormatJSON)
	return l
}

// SetFormat switches between JSON and human-readable text entries
func (l *Logger) SetFormat(format Format) {
	if format == FormatText {
		l.base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}
	l.base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(level Level) {
	l.base.SetLevel(level.logrus())
}

// SetDefault sets the package-level logger used by Debug, Info, Warn and Error
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) entry(fields Fields, err error) *logrus.Entry {
	e := logrus.NewEntry(l.base)
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

// Debug logs detailed diagnostic information
func (l *Logger) Debug(message string, fields Fields) {
	l.entry(fields, nil).Debug(message)
}

// Info logs general operational information
func (l *Logger) Info(message string, fields Fields) {
	l.entry(fields, nil).Info(message)
}

// Warn logs a condition that doesn't stop the current operation
func (l *Logger) Warn(message string, fields Fields) {
	l.entry(fields, nil).Warn(message)
}

// Error logs a failure together with its error
func (l *Logger) Error(message string, fields Fields, err error) {
	l.entry(fields, err).Error(message)
}

// Debugf, Warnf and Errorf make Logger usable as resty's logger.

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.base.Debugf(strings.TrimSpace(format), v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.base.Warnf(strings.TrimSpace(format), v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.base.Errorf(strings.TrimSpace(format), v...)
}

// Metrics tracks counters, gauges and timings for one process.
// All operations are safe for concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// TimingStats summarises the durations recorded under one name
type TimingStats struct {
	Count   int           `json:"count"`
	Total   time.Duration `json:"total"`
	Average time.Duration `json:"average"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
}

// Snapshot is a point-in-time copy of Metrics
type Snapshot struct {
	Counters map[string]int64       `json:"counters"`
	Gauges   map[string]float64     `json:"gauges"`
	Timings  map[string]TimingStats `json:"timings"`
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter adds one to the named counter
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge overwrites the named gauge
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming appends one duration measurement
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// Snapshot returns a deep copy of the current values with timing statistics
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		snap.Counters[k] = v
	}
	for k, v := range m.gauges {
		snap.Gauges[k] = v
	}
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		stats := TimingStats{Count: len(durations), Min: durations[0], Max: durations[0]}
		for _, d := range durations {
			stats.Total += d
			stats.Min = min(stats.Min, d)
			stats.Max = max(stats.Max, d)
		}
		stats.Average = stats.Total / time.Duration(len(durations))
		snap.Timings[name] = stats
	}
	return snap
}

// WriteTo prints the snapshot as sorted "name value" lines
func (s Snapshot) WriteTo(w io.Writer) (int64, error) {
	var lines []string
	for k, v := range s.Counters {
		lines = append(lines, fmt.Sprintf("counter %s %d", k, v))
	}
	for k, v := range s.Gauges {
		lines = append(lines, fmt.Sprintf("gauge %s %g", k, v))
	}
	for k, v := range s.Timings {
		lines = append(lines, fmt.Sprintf("timing %s count=%d avg=%s min=%s max=%s", k, v.Count, v.Average, v.Min, v.Max))
	}
	sort.Strings(lines)

	var written int64
	for _, line := range lines {
		n, err := fmt.Fprintln(w, line)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// DefaultMetrics returns the package-level tracker
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
