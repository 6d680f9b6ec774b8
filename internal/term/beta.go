package term

import (
	"github.com/sunholo/tidal/internal/abt"
)

// BetaReduce substitutes arg for name in body.
func BetaReduce(name abt.Name, body, arg Term) Term {
	return Subst(name, arg, body)
}

// BetaReduce2 reduces a two-parameter application left to right,
// keeping the remaining parameters under a lambda between steps so a
// substitute mentioning a later parameter triggers renaming rather than
// capture.
func BetaReduce2(n1, n2 abt.Name, body Term, a1, a2 Term) Term {
	return betaReduceN([]abt.Name{n1, n2}, body, []Term{a1, a2})
}

// BetaReduce3 reduces a three-parameter application left to right.
func BetaReduce3(n1, n2, n3 abt.Name, body Term, a1, a2, a3 Term) Term {
	return betaReduceN([]abt.Name{n1, n2, n3}, body, []Term{a1, a2, a3})
}

// BetaReduce4 reduces a four-parameter application left to right.
func BetaReduce4(n1, n2, n3, n4 abt.Name, body Term, a1, a2, a3, a4 Term) Term {
	return betaReduceN([]abt.Name{n1, n2, n3, n4}, body, []Term{a1, a2, a3, a4})
}

func betaReduceN(names []abt.Name, body Term, args []Term) Term {
	for len(names) > 1 {
		wrapped := Lam(names[1:], body)
		reduced := Subst(names[0], args[0], wrapped)
		rest, inner, ok := AsLam(reduced)
		if !ok {
			// Subst preserves the lambda shape it was handed.
			panic("term: beta reduction lost its lambda")
		}
		names, body, args = rest, inner, args[1:]
	}
	return Subst(names[0], args[0], body)
}

// EtaNormalForm removes trailing parameters that are passed through
// unchanged: Lam(x, Apply(f, args..., Var(x))) normalises to
// Apply(f, args...) when x is not free in f or args, and to f itself
// when no other arguments remain. Terms that are not eta-reducible are
// returned unchanged.
func EtaNormalForm(t Term) Term {
	names, body, ok := AsLam(t)
	if !ok {
		return t
	}
	body = EtaNormalForm(body)
	for len(names) > 0 {
		fn, args, ok := AsApply(body)
		if !ok {
			break
		}
		if len(args) == 0 {
			// Degenerate application; collapse and re-examine.
			body = fn
			continue
		}
		x := names[len(names)-1]
		lastName, isVar := AsVar(args[len(args)-1])
		if !isVar || lastName != x {
			break
		}
		rest := args[:len(args)-1]
		outside := FreeVars(fn)
		for _, a := range rest {
			outside = outside.Union(FreeVars(a))
		}
		if outside.Contains(x) {
			break
		}
		names = names[:len(names)-1]
		if len(rest) == 0 {
			body = fn
		} else {
			body = Apply(fn, rest...)
		}
	}
	if len(names) == 0 {
		return body
	}
	return Lam(names, body)
}
