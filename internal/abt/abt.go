// Package abt implements abstract binding trees: syntax trees that are
// generic over their node shapes and handle named binders uniformly.
//
// A tree is built from three node kinds: Var (a free or bound occurrence
// of a name), Abs (a binder that scopes a name over its body), and Tm (a
// language-specific shape whose recursive positions are subtrees). Every
// node carries an annotation; the standard instantiation annotates every
// subtree with its free-variable set so that substitution can skip
// subtrees in O(1).
package abt

import (
	"fmt"
	"sort"
	"strings"
)

// Name is an identifier with structural equality. Names compare by
// their text, never by position or identity.
type Name string

// Freshen returns base if it is not taken, otherwise base suffixed with
// the smallest non-negative integer that makes the result fresh.
func Freshen(base Name, taken Vars) Name {
	if !taken.Contains(base) {
		return base
	}
	for i := 0; ; i++ {
		candidate := Name(fmt.Sprintf("%s%d", base, i))
		if !taken.Contains(candidate) {
			return candidate
		}
	}
}

// Vars is a set of names. Sets attached to terms as annotations are
// shared between trees and must not be mutated; all operations below
// return fresh sets.
type Vars map[Name]struct{}

// NewVars builds a set containing the given names.
func NewVars(names ...Name) Vars {
	v := make(Vars, len(names))
	for _, n := range names {
		v[n] = struct{}{}
	}
	return v
}

// Contains reports whether n is in the set.
func (v Vars) Contains(n Name) bool {
	_, ok := v[n]
	return ok
}

// Len returns the number of names in the set.
func (v Vars) Len() int { return len(v) }

// Union returns a new set holding every name in v or w.
func (v Vars) Union(w Vars) Vars {
	out := make(Vars, len(v)+len(w))
	for n := range v {
		out[n] = struct{}{}
	}
	for n := range w {
		out[n] = struct{}{}
	}
	return out
}

// Without returns a new set with the given names removed.
func (v Vars) Without(names ...Name) Vars {
	out := make(Vars, len(v))
	for n := range v {
		out[n] = struct{}{}
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// Equal reports whether v and w contain the same names.
func (v Vars) Equal(w Vars) bool {
	if len(v) != len(w) {
		return false
	}
	for n := range v {
		if !w.Contains(n) {
			return false
		}
	}
	return true
}

// Names returns the members in sorted order.
func (v Vars) Names() []Name {
	out := make([]Name, 0, len(v))
	for n := range v {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v Vars) String() string {
	names := v.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// VarsMonoid combines free-variable sets by union.
func VarsMonoid() Monoid[Vars] {
	return Monoid[Vars]{
		Zero:    NewVars(),
		Combine: Vars.Union,
	}
}

// Shape is implemented by the language-specific node sum that fills Tm
// nodes. Children must return the immediate subterms in a deterministic
// left-to-right order; every traversal in this package visits children
// in that order.
type Shape[A any] interface {
	Children() []Term[A]
}

// Mapper rebuilds a shape with every child replaced by f(child). It is
// the shape's map capability, supplied by the consumer once per shape
// family, and must apply f to children in the same order as Children.
type Mapper[A, B any] func(s Shape[A], f func(Term[A]) Term[B]) Shape[B]

// Builder supplies the annotation-maintaining constructors for a given
// annotation type. Rewriting traversals rebuild nodes through a Builder
// so annotations stay consistent with the rewritten children.
type Builder[A any] struct {
	Var func(Name) Term[A]
	Abs func(Name, Term[A]) Term[A]
	Tm  func(Shape[A]) Term[A]
}

// Term is a node of an abstract binding tree annotated with A. The
// concrete variants are *Var, *Abs and *Tm; consumers construct them
// through NewVar/NewAbs/NewTm (free-variable annotations) or the
// *With constructors (explicit annotations).
type Term[A any] interface {
	// Ann returns the node's annotation.
	Ann() A
	termNode()
}

// Var is an occurrence of a name.
type Var[A any] struct {
	ann  A
	name Name
}

func (v *Var[A]) Ann() A     { return v.ann }
func (v *Var[A]) Name() Name { return v.name }
func (v *Var[A]) termNode()  {}

// Abs binds a name inside a body.
type Abs[A any] struct {
	ann  A
	name Name
	body Term[A]
}

func (a *Abs[A]) Ann() A        { return a.ann }
func (a *Abs[A]) Name() Name    { return a.name }
func (a *Abs[A]) Body() Term[A] { return a.body }
func (a *Abs[A]) termNode()     {}

// Tm wraps a language-specific shape.
type Tm[A any] struct {
	ann   A
	shape Shape[A]
}

func (t *Tm[A]) Ann() A          { return t.ann }
func (t *Tm[A]) Shape() Shape[A] { return t.shape }
func (t *Tm[A]) termNode()       {}

// VarWith constructs a variable with an explicit annotation.
func VarWith[A any](ann A, n Name) Term[A] {
	return &Var[A]{ann: ann, name: n}
}

// AbsWith constructs an abstraction with an explicit annotation.
func AbsWith[A any](ann A, n Name, body Term[A]) Term[A] {
	return &Abs[A]{ann: ann, name: n, body: body}
}

// TmWith constructs a shape node with an explicit annotation.
func TmWith[A any](ann A, s Shape[A]) Term[A] {
	return &Tm[A]{ann: ann, shape: s}
}

// NewVar constructs a variable annotated with its own free-variable
// set, {n}.
func NewVar(n Name) Term[Vars] {
	return VarWith(NewVars(n), n)
}

// NewAbs constructs an abstraction whose annotation is the body's
// free variables minus the bound name.
func NewAbs(n Name, body Term[Vars]) Term[Vars] {
	return AbsWith(body.Ann().Without(n), n, body)
}

// NewTm constructs a shape node whose annotation is the union of the
// children's free variables.
func NewTm(s Shape[Vars]) Term[Vars] {
	fv := NewVars()
	for _, c := range s.Children() {
		fv = fv.Union(c.Ann())
	}
	return TmWith(fv, s)
}

// VarsBuilder rebuilds nodes with free-variable annotations.
func VarsBuilder() Builder[Vars] {
	return Builder[Vars]{Var: NewVar, Abs: NewAbs, Tm: NewTm}
}

// AbsChain peels the run of leading abstractions off t, returning the
// bound names outermost first and the innermost body. The name list is
// empty when t is not an abstraction.
func AbsChain[A any](t Term[A]) ([]Name, Term[A]) {
	var names []Name
	for {
		a, ok := t.(*Abs[A])
		if !ok {
			return names, t
		}
		names = append(names, a.name)
		t = a.body
	}
}

// AbsN wraps body in abstractions for the given names, outermost first,
// maintaining free-variable annotations.
func AbsN(names []Name, body Term[Vars]) Term[Vars] {
	t := body
	for i := len(names) - 1; i >= 0; i-- {
		t = NewAbs(names[i], t)
	}
	return t
}
