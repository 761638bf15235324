package pactdsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/pactdsl/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeInvalidExample: an explicit example fails its own matcher (regex,
	// hex, UUID, date pattern).
	CodeInvalidExample = "invalid_example"
	// CodeInvalidSizeBound: min > max, numberExamples outside [min, max], or
	// zero examples where a value combinator needs one.
	CodeInvalidSizeBound = "invalid_size_bound"
	// CodeUnsupportedOperation: an array-only call on an object or vice versa.
	CodeUnsupportedOperation = "unsupported_operation"
	// CodeUseAfterClose: mutating a closed node or putting into one.
	CodeUseAfterClose = "use_after_close"
	// CodeNotClosed: reading a document or template before it is closed.
	CodeNotClosed = "not_closed"
	// CodeInvalidPattern: an empty date/time pattern or one with an unterminated quote.
	CodeInvalidPattern = "invalid_pattern"
)

// Issue represents a single usage error recorded while building a document.
type Issue struct {
	Path    string // Address of the node the call was made on (for example: $.items[*]).
	Code    string // One of the codes listed above.
	Message string
	Cause   error  // Underlying error, e.g. a regex that does not compile.
	// Params carries structured parameters (e.g., {"min":5, "numberExamples":3})
	// for i18n and observability.
	Params map[string]any
	// Op records the builder operation that produced this issue.
	Op string
}

// NewIssue builds an Issue whose message comes from the current translator.
// detail is appended to the translated message when not empty.
func NewIssue(path, code, op, detail string, params map[string]any) Issue {
	var data map[string]string
	if detail != "" {
		data = map[string]string{"detail": detail}
	}
	return Issue{Path: path, Code: code, Op: op, Message: i18n.T(code, data), Params: params}
}

// Issues is a collection of build errors that implements error.
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
		// e.g. invalid_size_bound at $.items (MinArrayLike)
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Op != "" {
			fmt.Fprintf(b, " (%s)", it.Op)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the issue causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
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
