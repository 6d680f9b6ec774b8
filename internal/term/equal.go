package term

import (
	"reflect"

	"github.com/sunholo/tidal/internal/abt"
)

// Equal reports structural equality, binder names included.
func Equal(a, b Term) bool {
	// Print carries binder names but not pattern contents or compiled
	// values, and renders large literals through float64; AlphaEquiv
	// compares those exactly.
	return AlphaEquiv(a, b) && Print(a) == Print(b)
}

// AlphaEquiv reports whether two terms are equal up to consistent
// renaming of bound variables.
func AlphaEquiv(a, b Term) bool {
	return alphaEq(a, b, map[abt.Name]int{}, map[abt.Name]int{}, 0)
}

// alphaEq compares terms under environments mapping each bound name to
// the depth at which it was bound.
func alphaEq(a, b Term, envA, envB map[abt.Name]int, depth int) bool {
	switch x := a.(type) {
	case *abt.Var[abt.Vars]:
		y, ok := b.(*abt.Var[abt.Vars])
		if !ok {
			return false
		}
		lx, boundX := envA[x.Name()]
		ly, boundY := envB[y.Name()]
		if boundX != boundY {
			return false
		}
		if boundX {
			return lx == ly
		}
		return x.Name() == y.Name()
	case *abt.Abs[abt.Vars]:
		y, ok := b.(*abt.Abs[abt.Vars])
		if !ok {
			return false
		}
		envA2 := bind(envA, x.Name(), depth)
		envB2 := bind(envB, y.Name(), depth)
		return alphaEq(x.Body(), y.Body(), envA2, envB2, depth+1)
	case *abt.Tm[abt.Vars]:
		y, ok := b.(*abt.Tm[abt.Vars])
		if !ok {
			return false
		}
		if !sameHead(x.Shape(), y.Shape()) {
			return false
		}
		as, bs := x.Shape().Children(), y.Shape().Children()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !alphaEq(as[i], bs[i], envA, envB, depth) {
				return false
			}
		}
		return true
	}
	return false
}

func bind(env map[abt.Name]int, n abt.Name, depth int) map[abt.Name]int {
	out := make(map[abt.Name]int, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	out[n] = depth
	return out
}

// sameHead compares the non-term data of two shapes: their kind plus
// any literals, identifiers, patterns and guard placement they carry.
func sameHead(a, b abt.Shape[abt.Vars]) bool {
	switch x := a.(type) {
	case *LamF[abt.Vars]:
		_, ok := b.(*LamF[abt.Vars])
		return ok
	case *ApplyF[abt.Vars]:
		y, ok := b.(*ApplyF[abt.Vars])
		return ok && len(x.Args) == len(y.Args)
	case *LetRecF[abt.Vars]:
		y, ok := b.(*LetRecF[abt.Vars])
		return ok && len(x.Bindings) == len(y.Bindings)
	case *LetF[abt.Vars]:
		_, ok := b.(*LetF[abt.Vars])
		return ok
	case *RecF[abt.Vars]:
		_, ok := b.(*RecF[abt.Vars])
		return ok
	case *IfF[abt.Vars]:
		_, ok := b.(*IfF[abt.Vars])
		return ok
	case *AndF[abt.Vars]:
		_, ok := b.(*AndF[abt.Vars])
		return ok
	case *OrF[abt.Vars]:
		_, ok := b.(*OrF[abt.Vars])
		return ok
	case *MatchF[abt.Vars]:
		y, ok := b.(*MatchF[abt.Vars])
		if !ok || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !reflect.DeepEqual(x.Cases[i].Pattern, y.Cases[i].Pattern) {
				return false
			}
			if (x.Cases[i].Guard == nil) != (y.Cases[i].Guard == nil) {
				return false
			}
		}
		return true
	case *HandleF[abt.Vars]:
		_, ok := b.(*HandleF[abt.Vars])
		return ok
	case *EffectPureF[abt.Vars]:
		_, ok := b.(*EffectPureF[abt.Vars])
		return ok
	case *EffectBindF[abt.Vars]:
		y, ok := b.(*EffectBindF[abt.Vars])
		return ok && x.Ctor == y.Ctor && len(x.Args) == len(y.Args)
	case *RequestF[abt.Vars]:
		y, ok := b.(*RequestF[abt.Vars])
		return ok && x.Ctor == y.Ctor
	case *ConstructorF[abt.Vars]:
		y, ok := b.(*ConstructorF[abt.Vars])
		return ok && x.Ctor == y.Ctor
	case *IdF[abt.Vars]:
		y, ok := b.(*IdF[abt.Vars])
		return ok && x.Ref == y.Ref
	case *UnboxedF[abt.Vars]:
		y, ok := b.(*UnboxedF[abt.Vars])
		return ok && x.Value == y.Value && x.Type == y.Type
	case *TextF[abt.Vars]:
		y, ok := b.(*TextF[abt.Vars])
		return ok && x.Text == y.Text
	case *SequenceF[abt.Vars]:
		y, ok := b.(*SequenceF[abt.Vars])
		return ok && len(x.Items) == len(y.Items)
	case *CompiledF[abt.Vars]:
		y, ok := b.(*CompiledF[abt.Vars])
		return ok && x.Value == y.Value
	}
	return false
}
