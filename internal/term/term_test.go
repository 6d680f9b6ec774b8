package term

import (
	"testing"

	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/internal/rid"
)

func TestFreeVars(t *testing.T) {
	// λx. f x y  has free variables {f, y}.
	tm := Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x"), Var("y")))
	if !FreeVars(tm).Equal(abt.NewVars("f", "y")) {
		t.Errorf("free vars = %v, want {f, y}", FreeVars(tm))
	}
}

func TestLamExpansion(t *testing.T) {
	tm := Lam([]abt.Name{"x", "y"}, Var("x"))
	names, body, ok := AsLam(tm)
	if !ok {
		t.Fatal("AsLam failed on a lambda")
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("binders = %v, want [x y]", names)
	}
	if n, ok := AsVar(body); !ok || n != "x" {
		t.Errorf("body = %v", body)
	}
	if FreeVars(tm).Len() != 0 {
		t.Errorf("closed lambda has free vars %v", FreeVars(tm))
	}
}

func TestLetScoping(t *testing.T) {
	// let x = one in let y = x in y: both bindings resolve, so the
	// whole term is closed except for the free names in the values.
	tm := Let([]Binding{
		{Name: "x", Value: Int64(1)},
		{Name: "y", Value: Var("x")},
	}, Var("y"))
	if FreeVars(tm).Len() != 0 {
		t.Errorf("free vars = %v, want {}", FreeVars(tm))
	}

	// Later bindings do not scope over earlier values.
	tm2 := Let([]Binding{
		{Name: "x", Value: Var("y")},
		{Name: "y", Value: Int64(1)},
	}, Var("x"))
	if !FreeVars(tm2).Equal(abt.NewVars("y")) {
		t.Errorf("free vars = %v, want {y}", FreeVars(tm2))
	}
}

func TestLetRecScoping(t *testing.T) {
	// let rec ping = λx. pong x; pong = λx. ping x in ping: every
	// binder scopes over every binding, so the term is closed.
	tm := LetRec([]Binding{
		{Name: "ping", Value: Lam([]abt.Name{"x"}, Apply(Var("pong"), Var("x")))},
		{Name: "pong", Value: Lam([]abt.Name{"x"}, Apply(Var("ping"), Var("x")))},
	}, Var("ping"))
	if FreeVars(tm).Len() != 0 {
		t.Errorf("free vars = %v, want {}", FreeVars(tm))
	}

	// Empty groups disappear.
	if got := LetRec(nil, Var("x")); !Equal(got, Var("x")) {
		t.Errorf("LetRec(nil, x) = %s", Print(got))
	}
}

func TestMatchArityInvariant(t *testing.T) {
	scrutinee := Var("s")

	// A well-formed case: one binder for a VarPattern.
	tm := Match(scrutinee, Case(VarPattern{}, []abt.Name{"x"}, nil, Var("x")))
	if !FreeVars(tm).Equal(abt.NewVars("s")) {
		t.Errorf("free vars = %v, want {s}", FreeVars(tm))
	}

	// Arity mismatch is a programmer error.
	defer func() {
		if recover() == nil {
			t.Error("expected panic on arity mismatch")
		}
	}()
	Match(scrutinee, MatchCase[abt.Vars]{Pattern: VarPattern{}, Body: Var("x")})
}

func TestApplyRequiresArguments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty application")
		}
	}()
	Apply(Var("f"))
}

func TestAlphaEquivalence(t *testing.T) {
	tests := []struct {
		name string
		a, b Term
		want bool
	}{
		{
			"identical lambdas",
			Lam([]abt.Name{"x"}, Var("x")),
			Lam([]abt.Name{"x"}, Var("x")),
			true,
		},
		{
			"renamed binder",
			Lam([]abt.Name{"x"}, Var("x")),
			Lam([]abt.Name{"y"}, Var("y")),
			true,
		},
		{
			"different free variables",
			Lam([]abt.Name{"x"}, Var("a")),
			Lam([]abt.Name{"x"}, Var("b")),
			false,
		},
		{
			"free versus bound",
			Lam([]abt.Name{"x"}, Var("x")),
			Lam([]abt.Name{"y"}, Var("x")),
			false,
		},
		{
			"binder order matters",
			Lam([]abt.Name{"x", "y"}, Var("x")),
			Lam([]abt.Name{"a", "b"}, Var("b")),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlphaEquiv(tt.a, tt.b); got != tt.want {
				t.Errorf("AlphaEquiv = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextNormalization(t *testing.T) {
	// "é" composed and decomposed render identically and must build
	// equal literals.
	composed := Text("café")
	decomposed := Text("cafe\u0301")
	if !Equal(composed, decomposed) {
		t.Error("NFC normalization did not unify text literals")
	}
}

func TestLeafShapesAreClosed(t *testing.T) {
	id := rid.New([]byte("definition"))
	leaves := []Term{
		Id(id),
		Constructor(rid.Constructor{ID: id, Tag: 0}),
		Request(rid.Constructor{ID: rid.Builtin("IO"), Tag: 2}),
		Unboxed(42, UInt64Type),
		Text("hello"),
		Boolean(true),
	}
	for i, l := range leaves {
		if FreeVars(l).Len() != 0 {
			t.Errorf("leaf %d has free vars %v", i, FreeVars(l))
		}
	}
}

func TestAnnotateBoundHead(t *testing.T) {
	tm := Lam([]abt.Name{"x", "y"}, Apply(Var("x"), Var("y")))
	bound := AnnotateBound(tm)

	// Walk to the application under both binders.
	root := bound.(*abt.Tm[abt.Bound[abt.Vars]])
	lam := root.Shape().(*LamF[abt.Bound[abt.Vars]])
	outer := lam.Body.(*abt.Abs[abt.Bound[abt.Vars]])
	inner := outer.Body().(*abt.Abs[abt.Bound[abt.Vars]])
	app := inner.Body()

	stack := app.Ann().Stack
	if len(stack) != 2 || stack[0] != "y" || stack[1] != "x" {
		t.Errorf("binder stack = %v, want [y x]", stack)
	}
}
