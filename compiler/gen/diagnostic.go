package gen

import (
	"fmt"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Severity of a reported diagnostic.
type Severity int

// Severity levels.
const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a non-fatal message produced while generating. Type and
// Property point at the originating declaration when known.
type Diagnostic struct {
	Severity Severity
	Pos      string
	Type     string
	Property string
	Message  string
	Err      error
}

// String formats the diagnostic like a compiler message.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos != "" {
		b.WriteString(d.Pos)
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	if d.Type != "" {
		b.WriteString(d.Type)
		if d.Property != "" {
			b.WriteByte('.')
			b.WriteString(d.Property)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Sink receives diagnostics.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in report order.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// HasErrors reports whether an error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// LogSink writes diagnostics to a charm logger.
type LogSink struct {
	Logger *charmlog.Logger
}

// NewLogSink returns a LogSink writing to l, or to the default logger if l is nil.
func NewLogSink(l *charmlog.Logger) *LogSink {
	if l == nil {
		l = charmlog.Default()
	}
	return &LogSink{Logger: l}
}

// Report implements Sink.
func (s *LogSink) Report(d Diagnostic) {
	keyvals := make([]any, 0, 8)
	if d.Pos != "" {
		keyvals = append(keyvals, "pos", d.Pos)
	}
	if d.Type != "" {
		keyvals = append(keyvals, "type", d.Type)
	}
	if d.Property != "" {
		keyvals = append(keyvals, "property", d.Property)
	}
	if d.Err != nil {
		keyvals = append(keyvals, "err", d.Err)
	}
	switch d.Severity {
	case SeverityError:
		s.Logger.Error(d.Message, keyvals...)
	default:
		s.Logger.Warn(d.Message, keyvals...)
	}
}

// Tee fans a diagnostic out to several sinks.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}

// scoped fills in the declaration a diagnostic belongs to.
type scoped struct {
	sink Sink
	pos  string
	typ  string
}

func (s scoped) Report(d Diagnostic) {
	if d.Pos == "" {
		d.Pos = s.pos
	}
	if d.Type == "" {
		d.Type = s.typ
	}
	s.sink.Report(d)
}

// Scope returns a sink that attributes diagnostics to the given declaration.
func Scope(sink Sink, pos, typ string) Sink {
	if sink == nil {
		sink = Discard
	}
	return scoped{sink: sink, pos: pos, typ: typ}
}

// Warn reports a warning built from err.
func Warn(sink Sink, property string, err error) {
	sink.Report(Diagnostic{Severity: SeverityWarning, Property: property, Message: err.Error(), Err: err})
}

// Fail reports an error built from err.
func Fail(sink Sink, property string, err error) {
	sink.Report(Diagnostic{Severity: SeverityError, Property: property, Message: err.Error(), Err: err})
}
