package adapter

import (
	"fmt"
	"log/slog"
	"strings"
)

// Call is one recorded backend primitive invocation.
type Call struct {
	Op   string
	Args []int32
}

// String renders the call the way the trace command prints it.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprintf("%d", a)
	}

	return c.Op + "(" + strings.Join(args, ", ") + ")"
}

// Trace wraps a Backend, recording every bracket and mutation primitive in
// call order and logging each at debug level. Queries pass through
// unrecorded; the interesting protocol property is the begin/end sequence.
type Trace struct {
	Backend

	calls []Call
}

// NewTrace creates a Trace around the given backend.
func NewTrace(b Backend) *Trace {
	return &Trace{Backend: b}
}

// Calls returns the recorded call log in invocation order.
func (t *Trace) Calls() []Call {
	return append([]Call(nil), t.calls...)
}

// Reset discards the recorded call log.
func (t *Trace) Reset() { t.calls = nil }

func (t *Trace) record(op string, args ...int32) {
	t.calls = append(t.calls, Call{Op: op, Args: args})
	slog.Debug("backend call", "op", op, "args", args)
}

// BeginEditor implements Backend.
func (t *Trace) BeginEditor() {
	t.record("BeginEditor")
	t.Backend.BeginEditor()
}

// EndEditor implements Backend.
func (t *Trace) EndEditor() {
	t.record("EndEditor")
	t.Backend.EndEditor()
}

// BeginNode implements Backend.
func (t *Trace) BeginNode(id int32) {
	t.record("BeginNode", id)
	t.Backend.BeginNode(id)
}

// EndNode implements Backend.
func (t *Trace) EndNode() {
	t.record("EndNode")
	t.Backend.EndNode()
}

// BeginNodeTitleBar implements Backend.
func (t *Trace) BeginNodeTitleBar() {
	t.record("BeginNodeTitleBar")
	t.Backend.BeginNodeTitleBar()
}

// EndNodeTitleBar implements Backend.
func (t *Trace) EndNodeTitleBar() {
	t.record("EndNodeTitleBar")
	t.Backend.EndNodeTitleBar()
}

// BeginInputAttribute implements Backend.
func (t *Trace) BeginInputAttribute(id int32, shape int32) {
	t.record("BeginInputAttribute", id, shape)
	t.Backend.BeginInputAttribute(id, shape)
}

// EndInputAttribute implements Backend.
func (t *Trace) EndInputAttribute() {
	t.record("EndInputAttribute")
	t.Backend.EndInputAttribute()
}

// BeginOutputAttribute implements Backend.
func (t *Trace) BeginOutputAttribute(id int32, shape int32) {
	t.record("BeginOutputAttribute", id, shape)
	t.Backend.BeginOutputAttribute(id, shape)
}

// EndOutputAttribute implements Backend.
func (t *Trace) EndOutputAttribute() {
	t.record("EndOutputAttribute")
	t.Backend.EndOutputAttribute()
}

// BeginStaticAttribute implements Backend.
func (t *Trace) BeginStaticAttribute(id int32) {
	t.record("BeginStaticAttribute", id)
	t.Backend.BeginStaticAttribute(id)
}

// EndStaticAttribute implements Backend.
func (t *Trace) EndStaticAttribute() {
	t.record("EndStaticAttribute")
	t.Backend.EndStaticAttribute()
}

// Link implements Backend.
func (t *Trace) Link(id, input, output int32) {
	t.record("Link", id, input, output)
	t.Backend.Link(id, input, output)
}

// WellNested reports whether the recorded begin/end calls form a properly
// nested sequence, closing regions in exact reverse order of opening.
// On violation it returns the offending call index.
func (t *Trace) WellNested() (bool, int) {
	var stack []string

	for i, call := range t.calls {
		switch {
		case strings.HasPrefix(call.Op, "Begin"):
			stack = append(stack, strings.TrimPrefix(call.Op, "Begin"))
		case strings.HasPrefix(call.Op, "End"):
			want := strings.TrimPrefix(call.Op, "End")
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return false, i
			}

			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return false, len(t.calls)
	}

	return true, -1
}
