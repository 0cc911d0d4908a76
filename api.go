package mappable

import "context"

// Mappable is implemented by every struct that embeds Base (through its
// pointer). The unexported method restricts implementations to embedders.
type Mappable interface {
	// Build hydrates the declared fields from the raw input captured at
	// construction. It never fails; problems are recorded as Issues.
	Build(ctx context.Context)
	// ToJSON returns the hydrated fields keyed by their output keys. Nested
	// Mappables are left in place; use Plain for a fully converted value.
	ToJSON() map[string]any
	// Issues returns the problems recorded by the last Build.
	Issues() Issues

	base() *Base
}

// NestedType constructs a Mappable from a raw sub-structure. *Schema[T]
// implements it, so a schema can be passed to Class.
type NestedType interface {
	Construct(ctx context.Context, raw any) (Mappable, error)
	TypeName() string
}

// FromJSON constructs and hydrates a *T from raw in one call.
func FromJSON[T any](s *Schema[T], raw any) (*T, error) {
	if s == nil {
		return nil, singleIssue("/", CodeParseError, ErrNilSchema)
	}
	return s.Parse(context.Background(), raw)
}
