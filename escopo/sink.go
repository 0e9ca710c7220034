package escopo

import (
	"io"
	"strings"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventBlockEntered EventKind = iota + 1
	EventBlockExited
	EventPrint
	EventDiagnostic
)

func (k EventKind) String() string {
	switch k {
	case EventBlockEntered:
		return "block-entered"
	case EventBlockExited:
		return "block-exited"
	case EventPrint:
		return "print"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Event is one unit of program output. Text is localized and ready to show.
type Event struct {
	Kind       EventKind
	Pos        Position
	Text       string
	Diagnostic *Diagnostic
}

// Banner reports whether the event is a block open or close notice.
func (e Event) Banner() bool {
	return e.Kind == EventBlockEntered || e.Kind == EventBlockExited
}

// Sink receives program output in execution order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// FormatEvent renders an event the way the console transcript shows it:
// block banners are preceded by a blank line.
func FormatEvent(ev Event) string {
	if ev.Banner() {
		return "\n" + ev.Text + "\n"
	}
	return ev.Text + "\n"
}

// WriterSink writes formatted events to an io.Writer. The first write error
// is kept and later events are dropped.
type WriterSink struct {
	w   io.Writer
	err error
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(ev Event) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, FormatEvent(ev))
}

func (s *WriterSink) Err() error {
	return s.err
}

// Recorder keeps every event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Lines returns the text of every recorded event.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Text
	}
	return out
}

// Diagnostics returns the recorded diagnostics in order.
func (r *Recorder) Diagnostics() []*Diagnostic {
	var out []*Diagnostic
	for _, ev := range r.Events {
		if ev.Diagnostic != nil {
			out = append(out, ev.Diagnostic)
		}
	}
	return out
}

// Transcript renders the recorded events as the console would show them.
func (r *Recorder) Transcript() string {
	var b strings.Builder
	for _, ev := range r.Events {
		b.WriteString(FormatEvent(ev))
	}
	return b.String()
}

func (r *Recorder) Reset() {
	r.Events = nil
}

// MultiSink fans each event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
