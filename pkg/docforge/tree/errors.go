package tree

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyAttached = errors.New("node already has a parent")
	ErrNotAttached     = errors.New("node is not attached")
	ErrInvalidChild    = errors.New("child kind not allowed here")
	ErrCycle           = errors.New("attaching would create a cycle")
	ErrOutOfRange      = errors.New("index out of range")
	ErrAlreadyMerged   = errors.New("region is already merged")
	ErrInvalidSpan     = errors.New("span must be at least 1x1")
)

// StructuralError reports a rejected tree operation. The tree is left as it
// was before the call.
type StructuralError struct {
	Op   string
	Node Node
	Err  error
}

func (e *StructuralError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("%s on %s: %v", e.Op, describe(e.Node), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func structural(op string, n Node, err error) error {
	return &StructuralError{Op: op, Node: n, Err: err}
}

// IsStructuralError checks if an error is a structural error
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func describe(n Node) string {
	if name := n.Name(); name != "" {
		return fmt.Sprintf("%s %q", n.Kind(), name)
	}
	return n.Kind().String()
}
