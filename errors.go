package statecanon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/statecanon/i18n"
)

// Issue codes. Leaf-level problems never become issues; they are absorbed by
// defaults and recorded in the presence map instead.
const (
	CodeStructuralMismatch = "structural_mismatch"
	CodeInvalidType        = "invalid_type"
	CodeDuplicateKey       = "duplicate_key"
	CodeParseError         = "parse_error"
	CodeTruncated          = "truncated"
	CodeInvalidConfig      = "invalid_config"
	// Internal invariant checks on already normalized documents.
	CodeAggregateViolation = "aggregate_violation"
)

// Issue represents a single problem found while reading a document.
type Issue struct {
	Path    string // JSON Pointer (for example: /主角/生命值).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional remediation hint.
	Cause   error  // Optional underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"min":0, "max":100, "got":120})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. structural_mismatch at /
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes issue causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
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

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// IsStructural reports whether err rejects the document as a whole: the root
// was not an object, or the bytes could not be decoded at all.
func IsStructural(err error) bool {
	return HasCode(err, CodeStructuralMismatch) || HasCode(err, CodeParseError)
}

// NewIssue builds an Issue whose message comes from the active translator.
func NewIssue(path, code string, params map[string]any) Issue {
	data := make(map[string]string, len(params))
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Offset: -1, Params: params}
}

// Structural returns the error reported when a document root is not an object.
func Structural(got any) Issues {
	return AppendIssues(nil, NewIssue("/", CodeStructuralMismatch, map[string]any{"got": KindOf(got)}))
}

// KindOf names the JSON kind of a decoded value.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any, []string:
		return "array"
	}
	if _, ok := asObject(v); ok {
		return "object"
	}
	if _, ok := asNumber(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
