package mappable

import "log/slog"

// Kind identifies the primitive or structural type a Property coerces to.
type Kind int

const (
	KindInteger Kind = iota // int64
	KindFloat               // float64
	KindBoolean             // bool
	KindString              // string
	KindObject              // map[string]any, []any or a nested Mappable
	KindArray               // []any (elements may be nested Mappables)
	KindMap                 // reserved; only the default is applied
)

var kindNames = [...]string{
	KindInteger: "int",
	KindFloat:   "float",
	KindBoolean: "bool",
	KindString:  "string",
	KindObject:  "object",
	KindArray:   "array",
	KindMap:     "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// DefaultPrefix is the internal marker that distinguishes field identifiers
// from wire keys ("_price" is read from "price" and written back as "price").
const DefaultPrefix = "_"

// ParseOpt bundles options for a single Parse call.
type ParseOpt struct {
	// Strict makes Parse return the issues recorded during hydration as its
	// error. The hydrated object is returned either way.
	Strict bool
	// MaxBytes caps the input size accepted by ParseReader (0 = unlimited).
	MaxBytes int64
	// OnDuplicateKey selects how ParseJSON and ParseReader treat repeated
	// object keys.
	OnDuplicateKey Duplicates
	// Logger overrides the process-wide diagnostic logger for this call.
	Logger *slog.Logger
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
