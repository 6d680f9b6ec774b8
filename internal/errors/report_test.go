package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sunholo/tidal/internal/schema"
)

func TestReportRoundTrip(t *testing.T) {
	rep := Newf(GRF001, "codec", "unknown marker byte 0x%02x", 0xFF).With("position", 12)
	err := WrapReport(rep)

	got, ok := AsReport(err)
	if !ok {
		t.Fatal("AsReport failed on a wrapped report")
	}
	if got.Code != GRF001 || got.Phase != "codec" {
		t.Errorf("report = %+v", got)
	}
	if got.Schema != schema.ErrorV1 {
		t.Errorf("schema = %q, want %q", got.Schema, schema.ErrorV1)
	}
}

func TestAsReportSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("while decoding: %w", WrapReport(New(GRF003, "codec", "dangling")))
	rep, ok := AsReport(err)
	if !ok {
		t.Fatal("AsReport failed through a wrap")
	}
	if rep.Code != GRF003 {
		t.Errorf("code = %s", rep.Code)
	}
}

func TestAsReportOnPlainError(t *testing.T) {
	if _, ok := AsReport(fmt.Errorf("plain")); ok {
		t.Error("AsReport invented a report")
	}
}

func TestReportError(t *testing.T) {
	err := WrapReport(New(TRM001, "term", "arity mismatch"))
	if got := err.Error(); got != "TRM001: arity mismatch" {
		t.Errorf("Error() = %q", got)
	}
}

func TestToJSONDeterministic(t *testing.T) {
	rep := New(GRF002, "codec", "truncated stream").
		With("expected", 8).
		With("actual", 3)
	first, err := rep.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := rep.ToJSON()
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("ToJSON is not deterministic:\n%s\nvs\n%s", first, again)
		}
	}
	if !strings.Contains(first, `"code": "GRF002"`) {
		t.Errorf("unexpected JSON:\n%s", first)
	}
}

func TestHumanIncludesCodeAndData(t *testing.T) {
	out := New(GRF001, "codec", "unknown marker").With("position", 7).Human()
	if !strings.Contains(out, "GRF001") || !strings.Contains(out, "position") {
		t.Errorf("Human() = %q", out)
	}
}
