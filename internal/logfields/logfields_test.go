package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Stage", KeyStage, "index", Stage("index")},
		{"Renderer", KeyRenderer, "list", Renderer("list")},
		{"Template", KeyTemplate, "t.tmpl", Template("t.tmpl")},
		{"Artifact", KeyArtifact, "public/index.html", Artifact("public/index.html")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Document", KeyDocument, "docs/a.md", Document("docs/a.md")},
		{"Size", KeySize, "1.2 kB", Size("1.2 kB")},
	}
	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if v := Page(2); v.Key != KeyPage || v.Value.Int64() != 2 {
		t.Fatalf("Page mismatch: %v", v)
	}
	if v := Count(7); v.Key != KeyCount || v.Value.Int64() != 7 {
		t.Fatalf("Count mismatch: %v", v)
	}
	if v := Duration(1500 * time.Microsecond); v.Key != KeyDurationMS || v.Value.Float64() != 1.5 {
		t.Fatalf("Duration mismatch: %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	if attr := Error(nil); attr.Key != KeyError || attr.Value.String() != "" {
		t.Fatalf("unexpected nil error attr: %v", attr)
	}
	if attr := Error(errors.New("boom")); attr.Value.String() != "boom" {
		t.Fatalf("unexpected error attr: %v", attr)
	}
}
