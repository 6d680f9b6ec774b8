package abt

// Monoid is a combining operation with an identity element, used by the
// fold family of traversals.
type Monoid[T any] struct {
	Zero    T
	Combine func(T, T) T
}

// Fold combines a slice of values left to right.
func (m Monoid[T]) Fold(values []T) T {
	acc := m.Zero
	for _, v := range values {
		acc = m.Combine(acc, v)
	}
	return acc
}

// Map lifts f over every annotation in the tree, preserving structure.
func Map[A, B any](t Term[A], f func(A) B, m Mapper[A, B]) Term[B] {
	switch n := t.(type) {
	case *Var[A]:
		return VarWith(f(n.ann), n.name)
	case *Abs[A]:
		return AbsWith(f(n.ann), n.name, Map(n.body, f, m))
	case *Tm[A]:
		return TmWith(f(n.ann), m(n.shape, func(c Term[A]) Term[B] {
			return Map(c, f, m)
		}))
	}
	panic("abt: unknown term variant")
}

// MapAccumulate maps f over the immediate children of a shape while
// threading a state value left to right.
func MapAccumulate[S, A, B any](s0 S, sh Shape[A], f func(S, Term[A]) (S, Term[B]), m Mapper[A, B]) (S, Shape[B]) {
	state := s0
	out := m(sh, func(c Term[A]) Term[B] {
		var mapped Term[B]
		state, mapped = f(state, c)
		return mapped
	})
	return state, out
}

// AnnotateFree re-annotates every subtree with its free-variable set,
// discarding the previous annotations.
func AnnotateFree[A any](t Term[A], m Mapper[A, Vars]) Term[Vars] {
	switch n := t.(type) {
	case *Var[A]:
		return NewVar(n.name)
	case *Abs[A]:
		return NewAbs(n.name, AnnotateFree(n.body, m))
	case *Tm[A]:
		return NewTm(m(n.shape, func(c Term[A]) Term[Vars] {
			return AnnotateFree(c, m)
		}))
	}
	panic("abt: unknown term variant")
}

// AnnotateDown pushes a state from the root toward the leaves. At each
// node f receives the parent's state and the node, and yields the state
// passed to the node's children together with the node's new
// annotation.
func AnnotateDown[S, A, B any](t Term[A], s0 S, f func(S, Term[A]) (S, B), m Mapper[A, B]) Term[B] {
	s, ann := f(s0, t)
	switch n := t.(type) {
	case *Var[A]:
		return VarWith(ann, n.name)
	case *Abs[A]:
		return AbsWith(ann, n.name, AnnotateDown(n.body, s, f, m))
	case *Tm[A]:
		return TmWith(ann, m(n.shape, func(c Term[A]) Term[B] {
			return AnnotateDown(c, s, f, m)
		}))
	}
	panic("abt: unknown term variant")
}

// AnnotateUp re-annotates the tree bottom-up: leaves (variables and
// childless shapes) are annotated with f, and every interior node with
// the monoid combination of its children's annotations.
func AnnotateUp[A, B any](t Term[A], f func(Term[A]) B, mo Monoid[B], m Mapper[A, B]) Term[B] {
	switch n := t.(type) {
	case *Var[A]:
		return VarWith(f(t), n.name)
	case *Abs[A]:
		body := AnnotateUp(n.body, f, mo, m)
		return AbsWith(body.Ann(), n.name, body)
	case *Tm[A]:
		if len(n.shape.Children()) == 0 {
			return TmWith(f(t), m(n.shape, func(c Term[A]) Term[B] {
				panic("abt: childless shape produced a child")
			}))
		}
		anns := []B{}
		sh := m(n.shape, func(c Term[A]) Term[B] {
			mapped := AnnotateUp(c, f, mo, m)
			anns = append(anns, mapped.Ann())
			return mapped
		})
		return TmWith(mo.Fold(anns), sh)
	}
	panic("abt: unknown term variant")
}

// FoldMap folds the tree bottom-up into a single monoid value, applying
// f only at leaves. It agrees with AnnotateUp on the root annotation.
func FoldMap[A, B any](t Term[A], f func(Term[A]) B, mo Monoid[B]) B {
	switch n := t.(type) {
	case *Var[A]:
		return f(t)
	case *Abs[A]:
		return FoldMap(n.body, f, mo)
	case *Tm[A]:
		children := n.shape.Children()
		if len(children) == 0 {
			return f(t)
		}
		acc := mo.Zero
		for _, c := range children {
			acc = mo.Combine(acc, FoldMap(c, f, mo))
		}
		return acc
	}
	panic("abt: unknown term variant")
}

// RewriteDown applies f to a node and then recurses into the children
// of the result. Nodes are rebuilt through b so annotations track the
// rewritten children.
func RewriteDown[A any](t Term[A], f func(Term[A]) Term[A], m Mapper[A, A], b Builder[A]) Term[A] {
	switch n := f(t).(type) {
	case *Var[A]:
		return b.Var(n.name)
	case *Abs[A]:
		return b.Abs(n.name, RewriteDown(n.body, f, m, b))
	case *Tm[A]:
		return b.Tm(m(n.shape, func(c Term[A]) Term[A] {
			return RewriteDown(c, f, m, b)
		}))
	}
	panic("abt: unknown term variant")
}

// RewriteUp recurses into the children first and applies f to the
// rebuilt node on the way out.
func RewriteUp[A any](t Term[A], f func(Term[A]) Term[A], m Mapper[A, A], b Builder[A]) Term[A] {
	switch n := t.(type) {
	case *Var[A]:
		return f(b.Var(n.name))
	case *Abs[A]:
		return f(b.Abs(n.name, RewriteUp(n.body, f, m, b)))
	case *Tm[A]:
		return f(b.Tm(m(n.shape, func(c Term[A]) Term[A] {
			return RewriteUp(c, f, m, b)
		})))
	}
	panic("abt: unknown term variant")
}

// RewriteDownS is RewriteDown with a state threaded through the
// traversal: f's output state flows to the node's children, left to
// right across siblings.
func RewriteDownS[S, A any](t Term[A], s0 S, f func(S, Term[A]) (S, Term[A]), m Mapper[A, A], b Builder[A]) Term[A] {
	out, _ := rewriteDownS(t, s0, f, m, b)
	return out
}

func rewriteDownS[S, A any](t Term[A], s0 S, f func(S, Term[A]) (S, Term[A]), m Mapper[A, A], b Builder[A]) (Term[A], S) {
	s, t1 := f(s0, t)
	switch n := t1.(type) {
	case *Var[A]:
		return b.Var(n.name), s
	case *Abs[A]:
		body, s1 := rewriteDownS(n.body, s, f, m, b)
		return b.Abs(n.name, body), s1
	case *Tm[A]:
		state := s
		sh := m(n.shape, func(c Term[A]) Term[A] {
			var mapped Term[A]
			mapped, state = rewriteDownS(c, state, f, m, b)
			return mapped
		})
		return b.Tm(sh), state
	}
	panic("abt: unknown term variant")
}

// Bound pairs a node's original annotation with the stack of enclosing
// binders, innermost first.
type Bound[A any] struct {
	Orig  A
	Stack []Name
}

// AnnotateBound re-annotates every node with its original annotation
// and the names of the abstractions enclosing it, innermost first. The
// body of Abs(n, _) sees n at the head of its stack; the Abs node
// itself does not.
func AnnotateBound[A any](t Term[A], m Mapper[A, Bound[A]]) Term[Bound[A]] {
	f := func(stack []Name, t Term[A]) ([]Name, Bound[A]) {
		next := stack
		if a, ok := t.(*Abs[A]); ok {
			next = append([]Name{a.name}, stack...)
		}
		return next, Bound[A]{Orig: t.Ann(), Stack: stack}
	}
	return AnnotateDown(t, nil, f, m)
}
