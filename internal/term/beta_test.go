package term

import (
	"testing"

	"github.com/sunholo/tidal/internal/abt"
)

func TestBetaReduce(t *testing.T) {
	// (λx. f x) a  →  f a
	got := BetaReduce("x", Apply(Var("f"), Var("x")), Var("a"))
	if !Equal(got, Apply(Var("f"), Var("a"))) {
		t.Errorf("beta = %s", Print(got))
	}
}

func TestBetaReduce2Shadowing(t *testing.T) {
	// (λx y. x y) y z: the first argument mentions the second binder,
	// so y must be renamed before the second step.
	got := BetaReduce2("x", "y", Apply(Var("x"), Var("y")), Var("y"), Var("z"))
	want := Apply(Var("y"), Var("z"))
	if !Equal(got, want) {
		t.Errorf("beta2 = %s, want %s", Print(got), Print(want))
	}
}

func TestBetaReduce3And4(t *testing.T) {
	body := Apply(Var("f"), Var("a"), Var("b"), Var("c"))
	got := BetaReduce3("a", "b", "c", body, Int64(1), Int64(2), Int64(3))
	want := Apply(Var("f"), Int64(1), Int64(2), Int64(3))
	if !Equal(got, want) {
		t.Errorf("beta3 = %s", Print(got))
	}

	body4 := Apply(Var("f"), Var("a"), Var("b"), Var("c"), Var("d"))
	got4 := BetaReduce4("a", "b", "c", "d", body4, Var("w"), Var("x"), Var("y"), Var("z"))
	want4 := Apply(Var("f"), Var("w"), Var("x"), Var("y"), Var("z"))
	if !Equal(got4, want4) {
		t.Errorf("beta4 = %s", Print(got4))
	}
}

func TestEtaNormalForm(t *testing.T) {
	tests := []struct {
		name string
		in   Term
		want Term
	}{
		{
			"plain eta reduction",
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x"))),
			Var("f"),
		},
		{
			"partial application retained",
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("a"), Var("x"))),
			Apply(Var("f"), Var("a")),
		},
		{
			"two parameters peel off",
			Lam([]abt.Name{"x", "y"}, Apply(Var("f"), Var("x"), Var("y"))),
			Var("f"),
		},
		{
			"binder free in fn blocks reduction",
			Lam([]abt.Name{"x"}, Apply(Var("x"), Var("x"))),
			Lam([]abt.Name{"x"}, Apply(Var("x"), Var("x"))),
		},
		{
			"binder free in earlier args blocks reduction",
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x"), Var("x"))),
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x"), Var("x"))),
		},
		{
			"last argument is not the binder",
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("y"))),
			Lam([]abt.Name{"x"}, Apply(Var("f"), Var("y"))),
		},
		{
			"not a lambda",
			Apply(Var("f"), Var("x")),
			Apply(Var("f"), Var("x")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EtaNormalForm(tt.in)
			if !Equal(got, tt.want) {
				t.Errorf("eta = %s, want %s", Print(got), Print(tt.want))
			}
		})
	}
}

func TestEtaNormalFormNested(t *testing.T) {
	// Normalisation looks through lambda bodies but not into argument
	// positions: λx. g (λy. f y) x drops only the outer parameter.
	in := Lam([]abt.Name{"x"},
		Apply(Var("g"), Lam([]abt.Name{"y"}, Apply(Var("f"), Var("y"))), Var("x")))
	got := EtaNormalForm(in)
	want := Apply(Var("g"), Lam([]abt.Name{"y"}, Apply(Var("f"), Var("y"))))
	if !Equal(got, want) {
		t.Errorf("eta = %s, want %s", Print(got), Print(want))
	}
}
