package mappable_test

import (
	"context"
	"testing"

	"github.com/reoring/mappable"
)

func TestDetectDuplicateKeys(t *testing.T) {
	iss, err := mappable.DetectDuplicateKeys([]byte(`{"a":1,"b":2}`))
	if err != nil || len(iss) != 0 {
		t.Fatalf("expected no issues, got %v %v", iss, err)
	}

	iss, err = mappable.DetectDuplicateKeys([]byte(`{"a":1,"l":[{"x":1},{"x":2,"x":3}],"o":{"k/1":1,"k/1":2},"a":2}`))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"/l/1/x", "/o/k~11", "/a"}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), iss)
	}
	for i, p := range want {
		if iss[i].Code != mappable.CodeDuplicateKey || iss[i].Path != p {
			t.Fatalf("issue %d: %+v (want path %s)", i, iss[i], p)
		}
	}
}

func TestParseJSON_DuplicateKeys(t *testing.T) {
	doc := []byte(`{"count":1,"count":2}`)
	ctx := context.Background()

	g, err := gallerySchema.ParseJSON(ctx, doc)
	if err != nil || g.Count != 2 || len(g.Issues()) != 0 {
		t.Fatalf("ignore mode: %v %+v", err, g)
	}

	g, err = gallerySchema.ParseJSON(ctx, doc, mappable.ParseOpt{OnDuplicateKey: mappable.DuplicatesWarn})
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if iss := g.Issues(); len(iss) != 1 || iss[0].Path != "/count" {
		t.Fatalf("warn mode issues: %v", iss)
	}

	_, err = gallerySchema.ParseJSON(ctx, doc, mappable.ParseOpt{OnDuplicateKey: mappable.DuplicatesError})
	if iss, ok := mappable.AsIssues(err); !ok || iss[0].Code != mappable.CodeDuplicateKey {
		t.Fatalf("error mode: %v", err)
	}
}
