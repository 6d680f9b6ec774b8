package term

import (
	"github.com/sunholo/tidal/internal/abt"
)

// Rename rewrites free occurrences of from to to. It does not avoid
// capture: callers must pass a to that is fresh for t.
func Rename(from, to abt.Name, t Term) Term {
	if !IsFreeIn(from, t) {
		return t
	}
	switch n := t.(type) {
	case *abt.Var[abt.Vars]:
		return Var(to)
	case *abt.Abs[abt.Vars]:
		return abt.NewAbs(n.Name(), Rename(from, to, n.Body()))
	case *abt.Tm[abt.Vars]:
		return abt.NewTm(MapShape(n.Shape(), func(c Term) Term {
			return Rename(from, to, c)
		}))
	}
	return t
}

// Subst replaces free occurrences of x in t with s, renaming binders
// that would capture a free variable of s. Substituting a name that is
// not free in t returns t unchanged.
func Subst(x abt.Name, s, t Term) Term {
	if !IsFreeIn(x, t) {
		return t
	}
	switch n := t.(type) {
	case *abt.Var[abt.Vars]:
		if n.Name() == x {
			return s
		}
		return t
	case *abt.Abs[abt.Vars]:
		name := n.Name()
		if FreeVars(s).Contains(name) {
			fresh := abt.Freshen(name, FreeVars(s).Union(FreeVars(n.Body())))
			return abt.NewAbs(fresh, Subst(x, s, Rename(name, fresh, n.Body())))
		}
		return abt.NewAbs(name, Subst(x, s, n.Body()))
	case *abt.Tm[abt.Vars]:
		return abt.NewTm(MapShape(n.Shape(), func(c Term) Term {
			return Subst(x, s, c)
		}))
	}
	return t
}

// Substs applies every replacement in m simultaneously: substitutes are
// never re-examined for further replacement. Binders colliding with a
// free variable of any substitute are renamed before descending.
func Substs(m map[abt.Name]Term, t Term) Term {
	if len(m) == 0 {
		return t
	}
	taken := abt.NewVars()
	for _, s := range m {
		taken = taken.Union(FreeVars(s))
	}
	return substs(m, taken, t)
}

func substs(m map[abt.Name]Term, taken abt.Vars, t Term) Term {
	live := false
	for x := range m {
		if IsFreeIn(x, t) {
			live = true
			break
		}
	}
	if !live {
		return t
	}
	switch n := t.(type) {
	case *abt.Var[abt.Vars]:
		if s, ok := m[n.Name()]; ok {
			return s
		}
		return t
	case *abt.Abs[abt.Vars]:
		name := n.Name()
		body := n.Body()
		if taken.Contains(name) {
			fresh := abt.Freshen(name, taken.Union(FreeVars(body)))
			return abt.NewAbs(fresh, substs(m, taken, Rename(name, fresh, body)))
		}
		if _, shadowed := m[name]; shadowed {
			inner := make(map[abt.Name]Term, len(m)-1)
			for x, s := range m {
				if x != name {
					inner[x] = s
				}
			}
			return abt.NewAbs(name, substs(inner, taken, body))
		}
		return abt.NewAbs(name, substs(m, taken, body))
	case *abt.Tm[abt.Vars]:
		return abt.NewTm(MapShape(n.Shape(), func(c Term) Term {
			return substs(m, taken, c)
		}))
	}
	return t
}
