// Package mappable maps untyped JSON-like input onto Go structs through a
// declarative schema and serializes the structs back.
//
// A mappable struct embeds Base and declares its fields with typed
// selectors. Each field carries a Property describing its kind, optional
// source and target key renames, a default and a deletion policy:
//
//	type Seller struct {
//		mappable.Base
//		Name string
//	}
//
//	var SellerSchema = mappable.Define(
//		mappable.Field("_name", mappable.String(), func(s *Seller) *string { return &s.Name }),
//	)
//
//	s, err := SellerSchema.Parse(ctx, raw)
//	out := s.ToJSON()
//
// Design policy:
//   - Hydration never fails on type mismatches; values are coerced with loose
//     JSON semantics or fall back to the field default.
//   - Problems that do occur (nested construction failures, unassignable
//     values) are collected as Issues on the object.
//   - JSON encoding/decoding goes through a pluggable JSONDriver (go-json by
//     default, see SetJSONDriver); YAML input is available via source/yaml.
package mappable
