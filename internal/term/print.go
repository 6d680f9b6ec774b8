package term

import (
	"fmt"

	"github.com/sunholo/tidal/internal/abt"
	"github.com/sunholo/tidal/internal/schema"
)

// Print produces a deterministic JSON representation of a term.
// This is used for golden snapshot testing.
//
// Design decisions:
// - Omits annotations: free-variable sets are derived data
// - Includes "type" field for each node to identify node kind
// - Sorted keys via schema.MarshalDeterministic for reproducibility
func Print(t Term) string {
	if t == nil {
		return "null"
	}
	data, err := schema.MarshalDeterministic(simplify(t))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// simplify converts a term to a simple JSON-serializable structure.
func simplify(t Term) any {
	switch n := t.(type) {
	case *abt.Var[abt.Vars]:
		return map[string]any{"type": "Var", "name": string(n.Name())}
	case *abt.Abs[abt.Vars]:
		return map[string]any{
			"type": "Abs",
			"name": string(n.Name()),
			"body": simplify(n.Body()),
		}
	case *abt.Tm[abt.Vars]:
		return simplifyShape(n.Shape())
	}
	return nil
}

func simplifyShape(s abt.Shape[abt.Vars]) any {
	switch sh := s.(type) {
	case *LamF[abt.Vars]:
		return map[string]any{"type": "Lam", "body": simplify(sh.Body)}
	case *ApplyF[abt.Vars]:
		return map[string]any{
			"type": "Apply",
			"fn":   simplify(sh.Fn),
			"args": simplifySlice(sh.Args),
		}
	case *LetRecF[abt.Vars]:
		return map[string]any{
			"type":     "LetRec",
			"bindings": simplifySlice(sh.Bindings),
			"body":     simplify(sh.Body),
		}
	case *LetF[abt.Vars]:
		return map[string]any{
			"type":    "Let",
			"binding": simplify(sh.Binding),
			"body":    simplify(sh.Body),
		}
	case *RecF[abt.Vars]:
		return map[string]any{"type": "Rec", "body": simplify(sh.Body)}
	case *IfF[abt.Vars]:
		return map[string]any{
			"type": "If",
			"cond": simplify(sh.Cond),
			"then": simplify(sh.Then),
			"else": simplify(sh.Else),
		}
	case *AndF[abt.Vars]:
		return map[string]any{"type": "And", "x": simplify(sh.X), "y": simplify(sh.Y)}
	case *OrF[abt.Vars]:
		return map[string]any{"type": "Or", "x": simplify(sh.X), "y": simplify(sh.Y)}
	case *MatchF[abt.Vars]:
		cases := make([]any, len(sh.Cases))
		for i, c := range sh.Cases {
			m := map[string]any{
				"pattern": fmt.Sprintf("%T", c.Pattern),
				"body":    simplify(c.Body),
			}
			if c.Guard != nil {
				m["guard"] = simplify(c.Guard)
			}
			cases[i] = m
		}
		return map[string]any{
			"type":      "Match",
			"scrutinee": simplify(sh.Scrutinee),
			"cases":     cases,
		}
	case *HandleF[abt.Vars]:
		return map[string]any{
			"type":    "Handle",
			"handler": simplify(sh.Handler),
			"block":   simplify(sh.Block),
		}
	case *EffectPureF[abt.Vars]:
		return map[string]any{"type": "EffectPure", "value": simplify(sh.Value)}
	case *EffectBindF[abt.Vars]:
		return map[string]any{
			"type": "EffectBind",
			"ref":  sh.Ctor.ID.String(),
			"tag":  sh.Ctor.Tag,
			"args": simplifySlice(sh.Args),
			"k":    simplify(sh.Continuation),
		}
	case *RequestF[abt.Vars]:
		return map[string]any{"type": "Request", "ref": sh.Ctor.ID.String(), "tag": sh.Ctor.Tag}
	case *ConstructorF[abt.Vars]:
		return map[string]any{"type": "Constructor", "ref": sh.Ctor.ID.String(), "tag": sh.Ctor.Tag}
	case *IdF[abt.Vars]:
		return map[string]any{"type": "Id", "ref": sh.Ref.String()}
	case *UnboxedF[abt.Vars]:
		return map[string]any{"type": "Unboxed", "value": sh.Value, "unboxedType": sh.Type.String()}
	case *TextF[abt.Vars]:
		return map[string]any{"type": "Text", "text": sh.Text}
	case *SequenceF[abt.Vars]:
		return map[string]any{"type": "Sequence", "items": simplifySlice(sh.Items)}
	case *CompiledF[abt.Vars]:
		return map[string]any{"type": "Compiled", "name": string(sh.Name)}
	}
	return map[string]any{"type": fmt.Sprintf("%T", s)}
}

func simplifySlice(ts []Term) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = simplify(t)
	}
	return out
}
