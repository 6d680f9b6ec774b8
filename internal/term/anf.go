package term

import (
	"fmt"

	"github.com/sunholo/tidal/internal/abt"
)

// ANF converts a term to A-normal form: every application has a
// trivial function position and trivial arguments, with non-trivial
// operands hoisted into let bindings whose names do not shadow
// anything in scope.
func ANF(t Term) Term {
	switch n := t.(type) {
	case *abt.Var[abt.Vars]:
		return t
	case *abt.Abs[abt.Vars]:
		return abt.NewAbs(n.Name(), ANF(n.Body()))
	case *abt.Tm[abt.Vars]:
		if app, ok := n.Shape().(*ApplyF[abt.Vars]); ok {
			return anfApply(t, app)
		}
		return abt.NewTm(MapShape(n.Shape(), ANF))
	}
	return t
}

func anfApply(t Term, app *ApplyF[abt.Vars]) Term {
	if !trivialHead(app.Fn) {
		fresh := abt.Freshen("f", FreeVars(t))
		inner := ANF(Apply(Var(fresh), app.Args...))
		return Let([]Binding{{Name: fresh, Value: ANF(app.Fn)}}, inner)
	}

	taken := FreeVars(t)
	var bindings []Binding
	args := make([]Term, len(app.Args))
	for i, a := range app.Args {
		if trivialArg(a) {
			args[i] = ANF(a)
			continue
		}
		fresh := abt.Freshen(abt.Name(fmt.Sprintf("arg%d", len(bindings))), taken)
		taken = taken.Union(abt.NewVars(fresh))
		bindings = append(bindings, Binding{Name: fresh, Value: ANF(a)})
		args[i] = Var(fresh)
	}
	out := Apply(ANF(app.Fn), args...)
	if len(bindings) > 0 {
		out = Let(bindings, out)
	}
	return out
}

// trivialHead reports whether a term may stand in function position of
// an ANF application.
func trivialHead(t Term) bool {
	if _, ok := AsVar(t); ok {
		return true
	}
	sh, ok := AsShape(t)
	if !ok {
		return false
	}
	switch sh.(type) {
	case *LamF[abt.Vars], *IdF[abt.Vars], *ConstructorF[abt.Vars], *RequestF[abt.Vars]:
		return true
	}
	return false
}

// trivialArg reports whether a term may stand in argument position of
// an ANF application.
func trivialArg(t Term) bool {
	if _, ok := AsVar(t); ok {
		return true
	}
	sh, ok := AsShape(t)
	if !ok {
		return false
	}
	switch sh.(type) {
	case *LamF[abt.Vars], *UnboxedF[abt.Vars]:
		return true
	}
	return false
}

// Curry rewrites every multi-parameter lambda into a chain of
// single-parameter lambdas and every multi-argument application into a
// chain of single-argument applications.
func Curry(t Term) Term {
	switch n := t.(type) {
	case *abt.Abs[abt.Vars]:
		return abt.NewAbs(n.Name(), Curry(n.Body()))
	case *abt.Tm[abt.Vars]:
		switch sh := n.Shape().(type) {
		case *LamF[abt.Vars]:
			names, body := abt.AbsChain(sh.Body)
			out := Curry(body)
			for i := len(names) - 1; i >= 0; i-- {
				out = Lam([]abt.Name{names[i]}, out)
			}
			return out
		case *ApplyF[abt.Vars]:
			out := Curry(sh.Fn)
			for _, a := range sh.Args {
				out = Apply(out, Curry(a))
			}
			return out
		}
		return abt.NewTm(MapShape(n.Shape(), Curry))
	}
	return t
}
