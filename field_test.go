package mappable_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/mappable"
)

type dims struct {
	W int     `json:"w"`
	H float64 `json:"h"`
}

type profile struct {
	mappable.Base
	Name   string
	Nick   string
	Tags   []string
	Dims   dims
	Extra  any
	Meta   map[string]any
	Score  int32
	Rating *float64
	List   []any
}

var profileSchema = mappable.Define(
	mappable.Field("_name", mappable.String(), func(p *profile) *string { return &p.Name }).
		Setter(func(p *profile, v any) {
			s, _ := v.(string)
			p.Name = strings.ToUpper(s)
		}),
	mappable.Field("_nick", mappable.String(mappable.UseSetterOnInit(false)), func(p *profile) *string { return &p.Nick }).
		Setter(func(p *profile, v any) { p.Nick = "setter" }),
	mappable.Field("_tags", mappable.Array(), func(p *profile) *[]string { return &p.Tags }),
	mappable.Field("_dims", mappable.Object(), func(p *profile) *dims { return &p.Dims }),
	mappable.Field("_extra", mappable.Object(), func(p *profile) *any { return &p.Extra }),
	mappable.Field("_meta", mappable.Map(mappable.Def(map[string]any{"v": 1})), func(p *profile) *map[string]any { return &p.Meta }),
	mappable.Field("_score", mappable.Integer(), func(p *profile) *int32 { return &p.Score }),
	mappable.Field("_rating", mappable.Float(mappable.DeleteIfUndefined()), func(p *profile) **float64 { return &p.Rating }),
	mappable.Field("_list", mappable.Array(), func(p *profile) *[]any { return &p.List }),
)

func parseProfile(t *testing.T, raw map[string]any) *profile {
	t.Helper()
	p, err := profileSchema.Parse(context.Background(), raw, mappable.ParseOpt{Logger: mappable.NopLogger()})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestField_SetterRouting(t *testing.T) {
	p := parseProfile(t, map[string]any{"name": "ada", "nick": "a"})
	if p.Name != "ADA" {
		t.Fatalf("setter not used: %q", p.Name)
	}
	if p.Nick != "a" {
		t.Fatalf("UseSetterOnInit(false) must assign directly: %q", p.Nick)
	}
}

func TestField_SetWith(t *testing.T) {
	type rec struct {
		mappable.Base
		Code string
		N    int64
	}
	s := mappable.Define(
		mappable.Field("_code", mappable.String(mappable.SetWith(func(v any) any {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
			return v
		})), func(r *rec) *string { return &r.Code }),
		mappable.Field("_n", mappable.Integer(mappable.SetWith(func(v any) any { return v.(int64) * 2 })), func(r *rec) *int64 { return &r.N }),
	)
	r, err := s.FromJSON(map[string]any{"code": "  x1 ", "n": "21"})
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if r.Code != "x1" || r.N != 42 {
		t.Fatalf("hooks not applied: %+v", r)
	}
}

func TestField_Conversions(t *testing.T) {
	p := parseProfile(t, map[string]any{
		"tags":   []any{"a", "b"},
		"dims":   map[string]any{"w": "3", "h": 4.5},
		"extra":  []any{1},
		"meta":   map[string]any{"ignored": true},
		"score":  "7",
		"rating": "4.5",
	})
	if !reflect.DeepEqual(p.Tags, []string{"a", "b"}) {
		t.Fatalf("tags: %#v", p.Tags)
	}
	if p.Dims != (dims{W: 3, H: 4.5}) {
		t.Fatalf("dims: %#v", p.Dims)
	}
	if !reflect.DeepEqual(p.Extra, []any{1}) {
		t.Fatalf("extra: %#v", p.Extra)
	}
	if !reflect.DeepEqual(p.Meta, map[string]any{"v": 1}) {
		t.Fatalf("map kind must take its default: %#v", p.Meta)
	}
	if p.Score != 7 {
		t.Fatalf("score: %d", p.Score)
	}
	if p.Rating == nil || *p.Rating != 4.5 {
		t.Fatalf("rating: %v", p.Rating)
	}
}

func TestField_ObjectRejectsScalars(t *testing.T) {
	p := parseProfile(t, map[string]any{"extra": "text"})
	if p.Extra != nil {
		t.Fatalf("scalar must fall back to the default: %#v", p.Extra)
	}
	if v, ok := p.ToJSON()["extra"]; !ok || v != nil {
		t.Fatalf("extra should serialize as null: %#v", v)
	}
}

func TestField_Unassignable(t *testing.T) {
	p := parseProfile(t, map[string]any{"dims": []any{1, 2}})
	iss := p.Issues()
	if len(iss) != 1 || iss[0].Code != mappable.CodeUnassignable || iss[0].Path != "/dims" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	if p.Has("_dims") {
		t.Fatalf("unassignable field must be deleted")
	}
}

func TestField_ArrayDefaultNotShared(t *testing.T) {
	a := parseProfile(t, map[string]any{})
	b := parseProfile(t, map[string]any{})
	if a.List == nil || len(a.List) != 0 {
		t.Fatalf("array default: %#v", a.List)
	}
	a.List = append(a.List, 1)
	if len(b.List) != 0 {
		t.Fatalf("instances share the default")
	}
}
