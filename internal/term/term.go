package term

import (
	"golang.org/x/text/unicode/norm"

	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/internal/errors"
	"github.com/sunholo/tidal/internal/rid"
)

// Term is a Tidal term annotated with its free-variable set. Every
// constructor in this package maintains the annotation, so callers can
// ask for free variables of any subtree in O(1).
type Term = abt.Term[abt.Vars]

// Shape is the shape family instantiated at the standard annotation.
type Shape = F[abt.Vars]

// Binding pairs a bound name with its definition in Let and LetRec
// forms.
type Binding struct {
	Name  abt.Name
	Value Term
}

// FreeVars returns the free variables of t.
func FreeVars(t Term) abt.Vars { return t.Ann() }

// IsFreeIn reports whether n occurs free in t.
func IsFreeIn(n abt.Name, t Term) bool { return t.Ann().Contains(n) }

// Var is an occurrence of a name.
func Var(n abt.Name) Term { return abt.NewVar(n) }

// Lam builds a function binding the given parameters, outermost first.
func Lam(names []abt.Name, body Term) Term {
	if len(names) == 0 {
		panic(errors.New(errors.TRM003, "term", "lambda with no parameters"))
	}
	return abt.NewTm(&LamF[abt.Vars]{Body: abt.AbsN(names, body)})
}

// Apply applies fn to one or more arguments.
func Apply(fn Term, args ...Term) Term {
	if len(args) == 0 {
		panic(errors.New(errors.TRM002, "term", "application with no arguments"))
	}
	return abt.NewTm(&ApplyF[abt.Vars]{Fn: fn, Args: args})
}

// Let binds each value in sequence, scoping every binding over the
// rest: Let([x=e, y=f], body) is let x = e in let y = f in body.
func Let(bindings []Binding, body Term) Term {
	out := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		out = abt.NewTm(&LetF[abt.Vars]{
			Binding: b.Value,
			Body:    abt.NewAbs(b.Name, out),
		})
	}
	return out
}

// LetRec binds a mutually recursive group: every bound name is in scope
// in every definition and in the body. With no bindings it returns the
// body unchanged.
func LetRec(bindings []Binding, body Term) Term {
	if len(bindings) == 0 {
		return body
	}
	names := make([]abt.Name, len(bindings))
	values := make([]Term, len(bindings))
	for i, b := range bindings {
		names[i] = b.Name
		values[i] = b.Value
	}
	group := abt.NewTm(&LetRecF[abt.Vars]{Bindings: values, Body: body})
	return abt.NewTm(&RecF[abt.Vars]{Body: abt.AbsN(names, group)})
}

// If builds a conditional.
func If(cond, then, els Term) Term {
	return abt.NewTm(&IfF[abt.Vars]{Cond: cond, Then: then, Else: els})
}

// And builds a short-circuiting conjunction.
func And(x, y Term) Term {
	return abt.NewTm(&AndF[abt.Vars]{X: x, Y: y})
}

// Or builds a short-circuiting disjunction.
func Or(x, y Term) Term {
	return abt.NewTm(&OrF[abt.Vars]{X: x, Y: y})
}

// Case builds a match case, wrapping body in one abstraction per bound
// name. Pass nil for guard when the case is unguarded.
func Case(p Pattern, bound []abt.Name, guard, body Term) MatchCase[abt.Vars] {
	c := MatchCase[abt.Vars]{Pattern: p, Body: abt.AbsN(bound, body)}
	if guard != nil {
		c.Guard = abt.AbsN(bound, guard)
	}
	return c
}

// Match scrutinises a value against the given cases. The number of
// leading abstractions on each case body must equal the pattern arity.
func Match(scrutinee Term, cases ...MatchCase[abt.Vars]) Term {
	for i, c := range cases {
		binders, _ := abt.AbsChain(c.Body)
		if len(binders) != c.Pattern.Arity() {
			panic(errors.Newf(errors.TRM001, "term",
				"case %d binds %d names, pattern arity is %d", i, len(binders), c.Pattern.Arity()))
		}
	}
	return abt.NewTm(&MatchF[abt.Vars]{Scrutinee: scrutinee, Cases: cases})
}

// Handle runs block under handler.
func Handle(handler, block Term) Term {
	return abt.NewTm(&HandleF[abt.Vars]{Handler: handler, Block: block})
}

// EffectPure wraps the pure completion of an effectful computation.
func EffectPure(v Term) Term {
	return abt.NewTm(&EffectPureF[abt.Vars]{Value: v})
}

// EffectBind pairs an effect request with its continuation.
func EffectBind(ctor rid.Constructor, args []Term, continuation Term) Term {
	return abt.NewTm(&EffectBindF[abt.Vars]{Ctor: ctor, Args: args, Continuation: continuation})
}

// Request names one constructor of an effect declaration.
func Request(ctor rid.Constructor) Term {
	return abt.NewTm(&RequestF[abt.Vars]{Ctor: ctor})
}

// Constructor names one constructor of a data declaration.
func Constructor(ctor rid.Constructor) Term {
	return abt.NewTm(&ConstructorF[abt.Vars]{Ctor: ctor})
}

// Id references a definition by stable identifier.
func Id(ref rid.ID) Term {
	return abt.NewTm(&IdF[abt.Vars]{Ref: ref})
}

// Unboxed builds an unboxed machine literal.
func Unboxed(value uint64, typ UnboxedType) Term {
	return abt.NewTm(&UnboxedF[abt.Vars]{Value: value, Type: typ})
}

// Int64 builds a signed integer literal.
func Int64(n int64) Term { return Unboxed(uint64(n), Int64Type) }

// Boolean builds a boolean literal.
func Boolean(b bool) Term {
	if b {
		return Unboxed(1, BooleanType)
	}
	return Unboxed(0, BooleanType)
}

// Text builds a text literal. The text is normalized to NFC so that
// literals that render identically compare equal.
func Text(s string) Term {
	return abt.NewTm(&TextF[abt.Vars]{Text: norm.NFC.String(s)})
}

// Sequence builds a sequence literal.
func Sequence(items ...Term) Term {
	return abt.NewTm(&SequenceF[abt.Vars]{Items: items})
}

// Compiled embeds an already-compiled runtime value. The name is a
// naming hint used when the value is decompiled.
func Compiled(v Value, name abt.Name) Term {
	return abt.NewTm(&CompiledF[abt.Vars]{Value: v, Name: name})
}

// AsVar deconstructs a variable occurrence.
func AsVar(t Term) (abt.Name, bool) {
	if v, ok := t.(*abt.Var[abt.Vars]); ok {
		return v.Name(), true
	}
	return "", false
}

// AsShape returns the shape of a Tm node.
func AsShape(t Term) (Shape, bool) {
	tm, ok := t.(*abt.Tm[abt.Vars])
	if !ok {
		return nil, false
	}
	sh, ok := tm.Shape().(Shape)
	return sh, ok
}

// AsLam deconstructs a function into its parameters and body.
func AsLam(t Term) ([]abt.Name, Term, bool) {
	sh, ok := AsShape(t)
	if !ok {
		return nil, nil, false
	}
	lam, ok := sh.(*LamF[abt.Vars])
	if !ok {
		return nil, nil, false
	}
	names, body := abt.AbsChain(lam.Body)
	return names, body, true
}

// AsApply deconstructs an application.
func AsApply(t Term) (Term, []Term, bool) {
	sh, ok := AsShape(t)
	if !ok {
		return nil, nil, false
	}
	app, ok := sh.(*ApplyF[abt.Vars])
	if !ok {
		return nil, nil, false
	}
	return app.Fn, app.Args, true
}

// AbsChain peels the run of leading abstractions off t, returning the
// bound names outermost first and the innermost body.
func AbsChain(t Term) ([]abt.Name, Term) {
	return abt.AbsChain(t)
}

// mapper and builder instances threading the shape family through the
// kernel traversals.

func varsMapper() abt.Mapper[abt.Vars, abt.Vars] {
	return MapShape[abt.Vars, abt.Vars]
}

// MapAnn lifts f over every annotation in the tree.
func MapAnn[B any](t Term, f func(abt.Vars) B) abt.Term[B] {
	return abt.Map(t, f, MapShape[abt.Vars, B])
}

// AnnotateFree re-annotates a tree of any annotation type with
// free-variable sets.
func AnnotateFree[A any](t abt.Term[A]) Term {
	return abt.AnnotateFree(t, MapShape[A, abt.Vars])
}

// AnnotateDown pushes a state from the root toward the leaves,
// annotating each node from its parent's state.
func AnnotateDown[S, B any](t Term, s0 S, f func(S, Term) (S, B)) abt.Term[B] {
	return abt.AnnotateDown(t, s0, f, MapShape[abt.Vars, B])
}

// AnnotateUp re-annotates the tree bottom-up under the given monoid,
// applying f only at leaves.
func AnnotateUp[B any](t Term, f func(Term) B, mo abt.Monoid[B]) abt.Term[B] {
	return abt.AnnotateUp(t, f, mo, MapShape[abt.Vars, B])
}

// FoldMap folds the tree bottom-up into a single monoid value.
func FoldMap[B any](t Term, f func(Term) B, mo abt.Monoid[B]) B {
	return abt.FoldMap(t, f, mo)
}

// RewriteDown applies f to each node top-down, recursing into the
// children of the rewritten node.
func RewriteDown(t Term, f func(Term) Term) Term {
	return abt.RewriteDown(t, f, varsMapper(), abt.VarsBuilder())
}

// RewriteUp rewrites children first, then applies f on the way out.
func RewriteUp(t Term, f func(Term) Term) Term {
	return abt.RewriteUp(t, f, varsMapper(), abt.VarsBuilder())
}

// RewriteDownS is RewriteDown with a threaded state.
func RewriteDownS[S any](t Term, s0 S, f func(S, Term) (S, Term)) Term {
	return abt.RewriteDownS(t, s0, f, varsMapper(), abt.VarsBuilder())
}

// AnnotateBound re-annotates each node with the stack of enclosing
// binders, innermost first.
func AnnotateBound(t Term) abt.Term[abt.Bound[abt.Vars]] {
	return abt.AnnotateBound(t, MapShape[abt.Vars, abt.Bound[abt.Vars]])
}

// AllNames returns every name mentioned by t: free variables, bound
// variables and binder names.
func AllNames(t Term) abt.Vars {
	names := abt.NewVars()
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case *abt.Var[abt.Vars]:
			names = names.Union(abt.NewVars(n.Name()))
		case *abt.Abs[abt.Vars]:
			names = names.Union(abt.NewVars(n.Name()))
			walk(n.Body())
		case *abt.Tm[abt.Vars]:
			for _, c := range n.Shape().Children() {
				walk(c)
			}
		}
	}
	walk(t)
	return names
}
