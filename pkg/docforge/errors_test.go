package docforge

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

func TestDocumentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"full", NewDocumentError("save", "out/a.docx", fs.ErrPermission), "document error during save of 'out/a.docx': permission denied"},
		{"no path", NewDocumentError("render", "", errors.New("boom")), "document error during render: boom"},
		{"no cause", NewDocumentError("render", "lesson", nil), "document error during render of 'lesson'"},
		{"bare", NewDocumentError("render", "", nil), "document error during render"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, IsDocumentError(tt.err))
		})
	}

	wrapped := fmt.Errorf("batch: %w", NewDocumentError("save", "x", fs.ErrPermission))
	assert.ErrorIs(t, wrapped, fs.ErrPermission, "cause is reachable through Unwrap")
}

func TestSchemaError(t *testing.T) {
	err := error(&SchemaError{Part: "word/document.xml", Cause: errors.New("w:tcW after w:shd")})
	assert.Equal(t, "schema error in word/document.xml: w:tcW after w:shd", err.Error())
	assert.True(t, IsSchemaError(fmt.Errorf("render: %w", err)), "seen through wrapping")
	assert.False(t, IsSchemaError(errors.New("other")))
	assert.Equal(t, "schema error: x", (&SchemaError{Cause: errors.New("x")}).Error())
}

func TestMultiError(t *testing.T) {
	m := NewMultiError()
	require.NoError(t, m.Err(), "empty MultiError yields nil")

	first := errors.New("first")
	m.Add(first)
	m.Add(nil)
	require.Equal(t, 1, m.Len())
	assert.Same(t, first, m.Err(), "single error is returned unwrapped")

	m.Add(errors.New("second"))
	msg := m.Err().Error()
	for _, want := range []string{"2 errors occurred:", "[1] first", "[2] second"} {
		assert.Contains(t, msg, want)
	}

	errs := m.Errors()
	errs[0] = nil
	assert.Same(t, first, m.Errors()[0], "Errors returns a copy")
}

func TestRecoverError(t *testing.T) {
	cause := errors.New("nil geometry")
	assert.ErrorIs(t, RecoverError(cause), cause)
	assert.EqualError(t, RecoverError("bad state"), "panic recovered: bad state")
	assert.EqualError(t, RecoverError(42), "panic recovered: 42")
}

func TestIsStructuralError(t *testing.T) {
	p := tree.NewParagraph()
	run := tree.NewRun("x")
	require.NoError(t, tree.AppendChild(p, run))

	err := tree.AppendChild(tree.NewParagraph(), run)
	assert.True(t, IsStructuralError(err), "got %v", err)
	assert.False(t, IsStructuralError(errors.New("plain")))
}
