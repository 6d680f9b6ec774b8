package term

import (
	"testing"

	"github.com/sunholo/tidal/internal/abt"
)

func TestANFHoistsNonTrivialArgs(t *testing.T) {
	// f (g a) 1  →  let arg0 = g a in f arg0 1
	in := Apply(Var("f"), Apply(Var("g"), Var("a")), Int64(1))
	want := Let(
		[]Binding{{Name: "arg0", Value: Apply(Var("g"), Var("a"))}},
		Apply(Var("f"), Var("arg0"), Int64(1)),
	)
	got := ANF(in)
	if !Equal(got, want) {
		t.Errorf("ANF = %s\nwant %s", Print(got), Print(want))
	}
}

func TestANFTrivialApplicationUnchanged(t *testing.T) {
	in := Apply(Var("f"), Var("x"), Int64(3))
	if got := ANF(in); !Equal(got, in) {
		t.Errorf("ANF changed a trivial application: %s", Print(got))
	}
}

func TestANFNonTrivialHead(t *testing.T) {
	// (if c then f else g) x  →  let f0 = if c then f else g in f0 x
	in := Apply(If(Var("c"), Var("f"), Var("g")), Var("x"))
	got := ANF(in)

	sh, ok := AsShape(got)
	if !ok {
		t.Fatalf("result is not a shape: %s", Print(got))
	}
	let, ok := sh.(*LetF[abt.Vars])
	if !ok {
		t.Fatalf("result is not a let: %s", Print(got))
	}
	if !Equal(let.Binding, If(Var("c"), Var("f"), Var("g"))) {
		t.Errorf("binding = %s", Print(let.Binding))
	}
	binders, inner := AbsChain(let.Body)
	if len(binders) != 1 {
		t.Fatalf("let body binds %d names", len(binders))
	}
	fn, args, ok := AsApply(inner)
	if !ok {
		t.Fatalf("let body is not an application: %s", Print(inner))
	}
	if n, _ := AsVar(fn); n != binders[0] {
		t.Errorf("head = %s, want the bound name %s", Print(fn), binders[0])
	}
	if n, _ := AsVar(args[0]); n != "x" {
		t.Errorf("arg = %s", Print(args[0]))
	}
}

func TestANFFreshNamesAvoidShadowing(t *testing.T) {
	// The obvious name arg0 is already free in the term and must not
	// be shadowed.
	in := Apply(Var("f"), Apply(Var("g"), Var("arg0")))
	got := ANF(in)

	sh, ok := AsShape(got)
	if !ok {
		t.Fatalf("result is not a shape: %s", Print(got))
	}
	let, ok := sh.(*LetF[abt.Vars])
	if !ok {
		t.Fatalf("result is not a let: %s", Print(got))
	}
	binders, _ := AbsChain(let.Body)
	if binders[0] == "arg0" {
		t.Error("fresh name shadows the existing arg0")
	}
	if !FreeVars(got).Equal(FreeVars(in)) {
		t.Errorf("ANF changed free vars: %v vs %v", FreeVars(got), FreeVars(in))
	}
}

func TestANFRecursesStructurally(t *testing.T) {
	// Arguments inside an if are normalized in place.
	in := If(Var("c"), Apply(Var("f"), Apply(Var("g"), Var("a"))), Var("z"))
	got := ANF(in)
	want := If(
		Var("c"),
		Let([]Binding{{Name: "arg0", Value: Apply(Var("g"), Var("a"))}},
			Apply(Var("f"), Var("arg0"))),
		Var("z"),
	)
	if !Equal(got, want) {
		t.Errorf("ANF = %s\nwant %s", Print(got), Print(want))
	}
}

func TestANFLambdaBody(t *testing.T) {
	in := Lam([]abt.Name{"x"}, Apply(Var("f"), Apply(Var("g"), Var("x"))))
	got := ANF(in)
	want := Lam([]abt.Name{"x"},
		Let([]Binding{{Name: "arg0", Value: Apply(Var("g"), Var("x"))}},
			Apply(Var("f"), Var("arg0"))))
	if !Equal(got, want) {
		t.Errorf("ANF = %s\nwant %s", Print(got), Print(want))
	}
}

func TestCurry(t *testing.T) {
	// λx y. f x y  →  λx. λy. (f x) y
	in := Lam([]abt.Name{"x", "y"}, Apply(Var("f"), Var("x"), Var("y")))
	got := Curry(in)
	want := Lam([]abt.Name{"x"},
		Lam([]abt.Name{"y"},
			Apply(Apply(Var("f"), Var("x")), Var("y"))))
	if !Equal(got, want) {
		t.Errorf("Curry = %s\nwant %s", Print(got), Print(want))
	}

	// Unary forms are untouched.
	unary := Lam([]abt.Name{"x"}, Apply(Var("f"), Var("x")))
	if got := Curry(unary); !Equal(got, unary) {
		t.Errorf("Curry changed a unary lambda: %s", Print(got))
	}
}
