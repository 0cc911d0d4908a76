package mappable_test

import (
	"context"
	"strings"
	"testing"

	"github.com/reoring/mappable"
)

func TestParseJSON(t *testing.T) {
	g, err := gallerySchema.ParseJSON(context.Background(),
		[]byte(`{"count":"12","flag":"false","images":[{"h":1.9,"w":"2px"}]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if g.Count != 12 || g.Flag || len(g.Images) != 1 || g.Images[0].Height != 1 || g.Images[0].Width != 2 {
		t.Fatalf("unexpected gallery: %+v", g)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := gallerySchema.ParseJSON(context.Background(), []byte(`{"count":`))
	iss, ok := mappable.AsIssues(err)
	if !ok || iss[0].Code != mappable.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	_, err = gallerySchema.ParseJSON(context.Background(), []byte(`"text"`))
	iss, ok = mappable.AsIssues(err)
	if !ok || iss[0].Code != mappable.CodeNotObject {
		t.Fatalf("expected not_object, got %v", err)
	}
}

func TestParseReader_MaxBytes(t *testing.T) {
	doc := `{"count":1}`
	if _, err := gallerySchema.ParseReader(context.Background(), strings.NewReader(doc),
		mappable.ParseOpt{MaxBytes: int64(len(doc))}); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	_, err := gallerySchema.ParseReader(context.Background(), strings.NewReader(doc),
		mappable.ParseOpt{MaxBytes: 4})
	iss, ok := mappable.AsIssues(err)
	if !ok || iss[0].Code != mappable.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestFromJSON_Generic(t *testing.T) {
	g, err := mappable.FromJSON(gallerySchema, map[string]any{"count": 2})
	if err != nil || g.Count != 2 {
		t.Fatalf("FromJSON: %v %+v", err, g)
	}
	if _, err := mappable.FromJSON[gallery](nil, nil); err == nil {
		t.Fatalf("nil schema must fail")
	}
}

func TestIssues_Error(t *testing.T) {
	one := mappable.Issues{{Path: "/seller", Code: mappable.CodeNestedConstruction, Message: "cannot build Seller"}}
	if got, want := one.Error(), "mappable: /seller: cannot build Seller (nested_construction)"; got != want {
		t.Fatalf("Error: %q", got)
	}
	many := mappable.Issues{{Code: "x"}, {Path: "/b", Code: "y"}, {Path: "/c", Code: "z"}}
	if got, want := many.Error(), "mappable: /: x (and 2 more)"; got != want {
		t.Fatalf("Error: %q", got)
	}
	if mappable.Issues(nil).Error() != "" {
		t.Fatalf("empty issues must render empty")
	}
	if _, ok := mappable.AsIssues(nil); ok {
		t.Fatalf("nil error carries no issues")
	}
}
