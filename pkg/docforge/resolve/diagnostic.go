package resolve

import (
	"errors"
	"fmt"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

// ErrConflict is wrapped by ConflictError.
var ErrConflict = errors.New("conflicting attribute")

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Diagnostic is a non-fatal finding tied to a node.
type Diagnostic struct {
	Severity Severity
	Node     tree.Node
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, describe(d.Node), d.Message)
}

// ConflictError is returned instead of a warning in strict mode.
type ConflictError struct {
	Node    tree.Node
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", describe(e.Node), e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Reporter receives diagnostics as they are recorded. The engine logger
// satisfies it.
type Reporter interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
	IsDebugMode() bool
}

type nopReporter struct{}

func (nopReporter) Debug(string, ...interface{}) {}
func (nopReporter) Warn(string, ...interface{})  {}
func (nopReporter) IsDebugMode() bool            { return false }

func describe(n tree.Node) string {
	if n == nil {
		return "<nil>"
	}
	if name := n.Name(); name != "" {
		return fmt.Sprintf("%s %q", n.Kind(), name)
	}
	return n.Kind().String()
}
