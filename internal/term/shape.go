// Package term instantiates the ABT kernel with the node shapes of the
// Tidal language and provides its transformations: capture-avoiding
// substitution, beta reduction, eta normalisation, A-normal-form
// conversion, currying and decompilation of embedded compiled values.
package term

import (
	"fmt"

	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/internal/errors"
	"github.com/sunholo/tidal/internal/rid"
)

// UnboxedType discriminates the machine representation of an unboxed
// literal.
type UnboxedType int

const (
	Int64Type UnboxedType = iota
	UInt64Type
	FloatType
	BooleanType
)

func (u UnboxedType) String() string {
	switch u {
	case Int64Type:
		return "Int64"
	case UInt64Type:
		return "UInt64"
	case FloatType:
		return "Float"
	case BooleanType:
		return "Boolean"
	}
	return fmt.Sprintf("UnboxedType(%d)", int(u))
}

// F is the shape family of Tidal terms: the concrete node kinds that
// fill Tm positions in the ABT. It is generic in the annotation so the
// kernel's annotation-changing traversals can rebuild it.
type F[A any] interface {
	abt.Shape[A]
	fShape()
}

// LamF is a function. Its body is an abstraction chain binding the
// parameters.
type LamF[A any] struct {
	Body abt.Term[A]
}

// ApplyF applies a function to one or more arguments.
type ApplyF[A any] struct {
	Fn   abt.Term[A]
	Args []abt.Term[A]
}

// LetRecF is the binding group at the center of a recursive let; the
// binder chain lives in the enclosing RecF abstraction.
type LetRecF[A any] struct {
	Bindings []abt.Term[A]
	Body     abt.Term[A]
}

// LetF binds a single value; the bound name is the abstraction at the
// head of Body.
type LetF[A any] struct {
	Binding abt.Term[A]
	Body    abt.Term[A]
}

// RecF marks the binder chain of a recursive let group.
type RecF[A any] struct {
	Body abt.Term[A]
}

// IfF is a conditional.
type IfF[A any] struct {
	Cond abt.Term[A]
	Then abt.Term[A]
	Else abt.Term[A]
}

// AndF is short-circuiting conjunction.
type AndF[A any] struct {
	X abt.Term[A]
	Y abt.Term[A]
}

// OrF is short-circuiting disjunction.
type OrF[A any] struct {
	X abt.Term[A]
	Y abt.Term[A]
}

// MatchCase is one arm of a pattern match. Body carries one leading
// abstraction per name the pattern binds; Guard is nil when absent.
type MatchCase[A any] struct {
	Pattern Pattern
	Guard   abt.Term[A]
	Body    abt.Term[A]
}

// MatchF scrutinises a value against a list of cases.
type MatchF[A any] struct {
	Scrutinee abt.Term[A]
	Cases     []MatchCase[A]
}

// HandleF runs a block under an effect handler.
type HandleF[A any] struct {
	Handler abt.Term[A]
	Block   abt.Term[A]
}

// EffectPureF is the pure completion of an effectful computation.
type EffectPureF[A any] struct {
	Value abt.Term[A]
}

// EffectBindF is an effect request paired with its continuation.
type EffectBindF[A any] struct {
	Ctor         rid.Constructor
	Args         []abt.Term[A]
	Continuation abt.Term[A]
}

// RequestF names one constructor of an effect declaration.
type RequestF[A any] struct {
	Ctor rid.Constructor
}

// ConstructorF names one constructor of a data declaration.
type ConstructorF[A any] struct {
	Ctor rid.Constructor
}

// IdF references a definition by stable identifier.
type IdF[A any] struct {
	Ref rid.ID
}

// UnboxedF is an unboxed machine literal.
type UnboxedF[A any] struct {
	Value uint64
	Type  UnboxedType
}

// TextF is a text literal, stored in NFC.
type TextF[A any] struct {
	Text string
}

// SequenceF is a sequence literal.
type SequenceF[A any] struct {
	Items []abt.Term[A]
}

// CompiledF embeds an already-compiled runtime value in a term.
type CompiledF[A any] struct {
	Value Value
	Name  abt.Name
}

func (*LamF[A]) fShape()         {}
func (*ApplyF[A]) fShape()       {}
func (*LetRecF[A]) fShape()      {}
func (*LetF[A]) fShape()         {}
func (*RecF[A]) fShape()         {}
func (*IfF[A]) fShape()          {}
func (*AndF[A]) fShape()         {}
func (*OrF[A]) fShape()          {}
func (*MatchF[A]) fShape()       {}
func (*HandleF[A]) fShape()      {}
func (*EffectPureF[A]) fShape()  {}
func (*EffectBindF[A]) fShape()  {}
func (*RequestF[A]) fShape()     {}
func (*ConstructorF[A]) fShape() {}
func (*IdF[A]) fShape()          {}
func (*UnboxedF[A]) fShape()     {}
func (*TextF[A]) fShape()        {}
func (*SequenceF[A]) fShape()    {}
func (*CompiledF[A]) fShape()    {}

func (s *LamF[A]) Children() []abt.Term[A] { return []abt.Term[A]{s.Body} }

func (s *ApplyF[A]) Children() []abt.Term[A] {
	out := make([]abt.Term[A], 0, 1+len(s.Args))
	out = append(out, s.Fn)
	return append(out, s.Args...)
}

func (s *LetRecF[A]) Children() []abt.Term[A] {
	out := make([]abt.Term[A], 0, 1+len(s.Bindings))
	out = append(out, s.Bindings...)
	return append(out, s.Body)
}

func (s *LetF[A]) Children() []abt.Term[A] { return []abt.Term[A]{s.Binding, s.Body} }
func (s *RecF[A]) Children() []abt.Term[A] { return []abt.Term[A]{s.Body} }
func (s *IfF[A]) Children() []abt.Term[A]  { return []abt.Term[A]{s.Cond, s.Then, s.Else} }
func (s *AndF[A]) Children() []abt.Term[A] { return []abt.Term[A]{s.X, s.Y} }
func (s *OrF[A]) Children() []abt.Term[A]  { return []abt.Term[A]{s.X, s.Y} }

func (s *MatchF[A]) Children() []abt.Term[A] {
	out := []abt.Term[A]{s.Scrutinee}
	for _, c := range s.Cases {
		if c.Guard != nil {
			out = append(out, c.Guard)
		}
		out = append(out, c.Body)
	}
	return out
}

func (s *HandleF[A]) Children() []abt.Term[A]     { return []abt.Term[A]{s.Handler, s.Block} }
func (s *EffectPureF[A]) Children() []abt.Term[A] { return []abt.Term[A]{s.Value} }

func (s *EffectBindF[A]) Children() []abt.Term[A] {
	out := make([]abt.Term[A], 0, 1+len(s.Args))
	out = append(out, s.Args...)
	return append(out, s.Continuation)
}

func (s *RequestF[A]) Children() []abt.Term[A]     { return nil }
func (s *ConstructorF[A]) Children() []abt.Term[A] { return nil }
func (s *IdF[A]) Children() []abt.Term[A]          { return nil }
func (s *UnboxedF[A]) Children() []abt.Term[A]     { return nil }
func (s *TextF[A]) Children() []abt.Term[A]        { return nil }
func (s *SequenceF[A]) Children() []abt.Term[A]    { return s.Items }
func (s *CompiledF[A]) Children() []abt.Term[A]    { return nil }

// MapShape rebuilds a shape with every child replaced by f(child),
// visiting children in the same order as Children. It is the mapper
// dictionary the kernel traversals are parameterised over.
func MapShape[A, B any](s abt.Shape[A], f func(abt.Term[A]) abt.Term[B]) abt.Shape[B] {
	switch sh := s.(type) {
	case *LamF[A]:
		return &LamF[B]{Body: f(sh.Body)}
	case *ApplyF[A]:
		return &ApplyF[B]{Fn: f(sh.Fn), Args: mapTerms(sh.Args, f)}
	case *LetRecF[A]:
		return &LetRecF[B]{Bindings: mapTerms(sh.Bindings, f), Body: f(sh.Body)}
	case *LetF[A]:
		return &LetF[B]{Binding: f(sh.Binding), Body: f(sh.Body)}
	case *RecF[A]:
		return &RecF[B]{Body: f(sh.Body)}
	case *IfF[A]:
		return &IfF[B]{Cond: f(sh.Cond), Then: f(sh.Then), Else: f(sh.Else)}
	case *AndF[A]:
		return &AndF[B]{X: f(sh.X), Y: f(sh.Y)}
	case *OrF[A]:
		return &OrF[B]{X: f(sh.X), Y: f(sh.Y)}
	case *MatchF[A]:
		out := &MatchF[B]{Scrutinee: f(sh.Scrutinee)}
		for _, c := range sh.Cases {
			mapped := MatchCase[B]{Pattern: c.Pattern}
			if c.Guard != nil {
				mapped.Guard = f(c.Guard)
			}
			mapped.Body = f(c.Body)
			out.Cases = append(out.Cases, mapped)
		}
		return out
	case *HandleF[A]:
		return &HandleF[B]{Handler: f(sh.Handler), Block: f(sh.Block)}
	case *EffectPureF[A]:
		return &EffectPureF[B]{Value: f(sh.Value)}
	case *EffectBindF[A]:
		return &EffectBindF[B]{Ctor: sh.Ctor, Args: mapTerms(sh.Args, f), Continuation: f(sh.Continuation)}
	case *RequestF[A]:
		return &RequestF[B]{Ctor: sh.Ctor}
	case *ConstructorF[A]:
		return &ConstructorF[B]{Ctor: sh.Ctor}
	case *IdF[A]:
		return &IdF[B]{Ref: sh.Ref}
	case *UnboxedF[A]:
		return &UnboxedF[B]{Value: sh.Value, Type: sh.Type}
	case *TextF[A]:
		return &TextF[B]{Text: sh.Text}
	case *SequenceF[A]:
		return &SequenceF[B]{Items: mapTerms(sh.Items, f)}
	case *CompiledF[A]:
		return &CompiledF[B]{Value: sh.Value, Name: sh.Name}
	}
	panic(errors.Newf(errors.ABT001, "term", "unknown shape %T", s))
}

func mapTerms[A, B any](ts []abt.Term[A], f func(abt.Term[A]) abt.Term[B]) []abt.Term[B] {
	if ts == nil {
		return nil
	}
	out := make([]abt.Term[B], len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}
