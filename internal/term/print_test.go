package term

import (
	"strings"
	"testing"

	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/testutil"
)

func TestPrintDeterministic(t *testing.T) {
	tm := Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x")))
	first := Print(tm)
	for i := 0; i < 5; i++ {
		if got := Print(tm); got != first {
			t.Fatalf("Print is not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
	if !strings.Contains(first, `"type": "Lam"`) {
		t.Errorf("unexpected output:\n%s", first)
	}
}

func TestPrintGolden(t *testing.T) {
	tests := []struct {
		name string
		tm   Term
	}{
		{
			"lambda",
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x"), Var("y"))),
		},
		{
			"let_over_literal",
			Let([]Binding{{Name: "n", Value: Int64(42)}}, Apply(Var("f"), Var("n"))),
		},
		{
			"conditional",
			If(Boolean(true), Text("yes"), Text("no")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.CompareWithGolden(t, "print", tt.name, Print(tt.tm))
		})
	}
}
