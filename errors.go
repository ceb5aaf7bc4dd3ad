package omnitree

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Issue codes reported while building a schema from a definition document.
const (
	CodeRequired         = "required"
	CodeInvalidType      = "invalid_type"
	CodeUnknownReference = "unknown_reference"
	CodeDuplicateName    = "duplicate_name"
	CodeInvalidBound     = "invalid_bound"
	// Encoder-level codes, see ErrorCode.
	CodeStructuralMismatch = "structural_mismatch"
	CodeIncomplete         = "incomplete"
	CodeShortWrite         = "short_write"
	CodeLimitExceeded      = "limit_exceeded"
)

var (
	// ErrStructuralMismatch reports an End call that does not match the
	// innermost open container, or an End call with nothing open.
	ErrStructuralMismatch = errors.New("omnitree: structural mismatch")
	// ErrIncomplete is available to callers that want to turn an incomplete
	// encode (a visitor stopped traversal) into an error.
	ErrIncomplete = errors.New("omnitree: encode incomplete")
	// ErrLimitExceeded reports an encode aborted by a node or output budget.
	ErrLimitExceeded = errors.New("omnitree: limit exceeded")
)

// ErrorCode returns the message code for an encoder-level error, or "" when
// err is not one of them.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStructuralMismatch):
		return CodeStructuralMismatch
	case errors.Is(err, ErrIncomplete):
		return CodeIncomplete
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimitExceeded
	case errors.Is(err, io.ErrShortWrite):
		return CodeShortWrite
	}
	return ""
}

// StructuralError describes a bracket-balance violation by a wire encoder
// caller. It matches ErrStructuralMismatch with errors.Is.
type StructuralError struct {
	Op  string // ObjectEnd or ListEnd
	Top string // innermost open container state, "" when nothing is open
}

func (e *StructuralError) Error() string {
	if e.Top == "" {
		return fmt.Sprintf("omnitree: %s without an open container", e.Op)
	}
	return fmt.Sprintf("omnitree: %s while innermost container is %s", e.Op, e.Top)
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructuralMismatch }

// Issue represents a single problem found in a schema definition.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer into the definition (for example: /entities/1/fields/0).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	// Params carries structured parameters (e.g., {"ref": "address"}).
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of definition problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_reference at /entities/0/fields/1
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// OpError wraps an underlying error with the operation and file it concerns.
type OpError struct {
	Op   string
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
