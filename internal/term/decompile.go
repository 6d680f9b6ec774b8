package term

import (
	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/internal/errors"
)

// Value is an already-compiled runtime value embedded in a term by a
// Compiled node. The term layer interprets only identity and
// reference-ness; everything else about the value is opaque.
type Value interface {
	// Decompile returns the term form of the value. The result may
	// itself contain Compiled nodes.
	Decompile() (Term, error)
}

// Ref is a reference cell in the value world. References give values
// identity and may form cycles; decompilation turns those cycles into
// LetRec bindings.
type Ref interface {
	Value
	// RefName is the naming hint used when the reference is lifted
	// into a binding.
	RefName() abt.Name
	// Dereference returns the referent.
	Dereference() Value
}

// UnboxedValue is an immediate machine value. It decompiles to the
// corresponding literal.
type UnboxedValue struct {
	Value uint64
	Type  UnboxedType
}

// Decompile implements Value.
func (v UnboxedValue) Decompile() (Term, error) {
	return Unboxed(v.Value, v.Type), nil
}

// StripOuterCompiled unwraps a top-level Compiled node, returning the
// decompiled value. Any other term is returned unchanged.
func StripOuterCompiled(t Term) (Term, error) {
	if sh, ok := AsShape(t); ok {
		if c, ok := sh.(*CompiledF[abt.Vars]); ok {
			return c.Value.Decompile()
		}
	}
	return t, nil
}

// FullyDecompile replaces every Compiled node in t with concrete
// syntax. References reachable from t are decompiled transitively and
// lifted into a single outer LetRec, so reference cycles in the value
// world become ordinary recursive bindings. The result contains no
// Compiled nodes.
func FullyDecompile(t Term) (Term, error) {
	var order []Ref
	bodies := make(map[Ref]Term)
	// Names of non-reference values, which are spliced in place.
	inlined := abt.NewVars()

	var collect func(Term) error
	var collectValue func(Value) error
	collect = func(t Term) error {
		switch n := t.(type) {
		case *abt.Abs[abt.Vars]:
			return collect(n.Body())
		case *abt.Tm[abt.Vars]:
			if c, ok := n.Shape().(*CompiledF[abt.Vars]); ok {
				return collectValue(c.Value)
			}
			for _, ch := range n.Shape().Children() {
				if err := collect(ch); err != nil {
					return err
				}
			}
		}
		return nil
	}
	collectValue = func(v Value) error {
		if r, ok := v.(Ref); ok {
			if _, seen := bodies[r]; seen {
				return nil
			}
			body, err := r.Dereference().Decompile()
			if err != nil {
				return err
			}
			bodies[r] = body
			order = append(order, r)
			return collect(body)
		}
		if _, ok := v.(UnboxedValue); ok {
			return nil
		}
		body, err := v.Decompile()
		if err != nil {
			return err
		}
		inlined = inlined.Union(AllNames(body))
		return collect(body)
	}
	if err := collect(t); err != nil {
		return nil, err
	}

	// Freshen reference names against every name mentioned anywhere,
	// binder names included, so the new bindings cannot collide.
	used := AllNames(t).Union(inlined)
	for _, r := range order {
		used = used.Union(AllNames(bodies[r]))
	}
	fresh := make(map[Ref]abt.Name, len(order))
	for _, r := range order {
		name := abt.Freshen(r.RefName(), used)
		fresh[r] = name
		used = used.Union(abt.NewVars(name))
	}

	var rewrite func(Term) (Term, error)
	rewrite = func(t Term) (Term, error) {
		switch n := t.(type) {
		case *abt.Var[abt.Vars]:
			return t, nil
		case *abt.Abs[abt.Vars]:
			body, err := rewrite(n.Body())
			if err != nil {
				return nil, err
			}
			return abt.NewAbs(n.Name(), body), nil
		case *abt.Tm[abt.Vars]:
			if c, ok := n.Shape().(*CompiledF[abt.Vars]); ok {
				if r, ok := c.Value.(Ref); ok {
					name, ok := fresh[r]
					if !ok {
						return nil, errors.WrapReport(errors.Newf(errors.TRM004, "term",
							"reference %s escaped collection", r.RefName()))
					}
					return Var(name), nil
				}
				if u, ok := c.Value.(UnboxedValue); ok {
					return Unboxed(u.Value, u.Type), nil
				}
				inner, err := c.Value.Decompile()
				if err != nil {
					return nil, err
				}
				return rewrite(inner)
			}
			var err error
			sh := MapShape(n.Shape(), func(c Term) Term {
				if err != nil {
					return c
				}
				out, e := rewrite(c)
				if e != nil {
					err = e
					return c
				}
				return out
			})
			if err != nil {
				return nil, err
			}
			return abt.NewTm(sh), nil
		}
		return t, nil
	}

	body, err := rewrite(t)
	if err != nil {
		return nil, err
	}
	bindings := make([]Binding, 0, len(order))
	for _, r := range order {
		value, err := rewrite(bodies[r])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: fresh[r], Value: value})
	}
	return LetRec(bindings, body), nil
}
