package mappable

import (
	"errors"
	"fmt"

	"github.com/reoring/mappable/i18n"
)

// Issue codes
const (
	CodeNotObject          = "not_object"
	CodeNestedConstruction = "nested_construction"
	CodeParseError         = "parse_error"
	CodeTruncated          = "truncated"
	CodeUnassignable       = "unassignable"
	CodeDuplicateKey       = "duplicate_key"
)

var (
	// ErrNotObject is the cause attached to not_object issues.
	ErrNotObject = errors.New("mappable: raw input is not an object")
	// ErrNilSchema is returned by entry points given a nil schema.
	ErrNilSchema = errors.New("mappable: nil schema")
)

// Issue is a single problem recorded while parsing or hydrating.
type Issue struct {
	Path    string // JSON Pointer of the offending field (for example: /images/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// String renders the issue as "path: message (code)".
func (it Issue) String() string {
	path := it.Path
	if path == "" {
		path = "/"
	}
	if it.Message == "" {
		return path + ": " + it.Code
	}
	return fmt.Sprintf("%s: %s (%s)", path, it.Message, it.Code)
}

// Error reports the first issue and how many others were recorded.
func (iss Issues) Error() string {
	switch len(iss) {
	case 0:
		return ""
	case 1:
		return "mappable: " + iss[0].String()
	}
	return fmt.Sprintf("mappable: %s (and %d more)", iss[0], len(iss)-1)
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

// AsIssues returns the Issues carried by err, if any.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	ok := errors.As(err, &iss)
	return iss, ok
}

func singleIssue(path, code string, cause error) Issues {
	return Issues{{Path: path, Code: code, Message: i18n.T(code, nil), Cause: cause}}
}

// rebase prefixes every issue path with base (a JSON Pointer).
func rebase(iss Issues, base string) Issues {
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
