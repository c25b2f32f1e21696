package lexicon

// Transform expands one entry into zero or more entries. It is applied by
// Lexicon.Rewrite and Lexicon.Derive and must not read or mutate the Lexicon
// it is applied to.
type Transform interface {
	Apply(Entry) []Entry
}

// TransformFunc adapts an ordinary function to Transform.
type TransformFunc func(Entry) []Entry

// Apply calls f(e).
func (f TransformFunc) Apply(e Entry) []Entry {
	return f(e)
}

// Identity maps every entry to itself.
var Identity Transform = TransformFunc(func(e Entry) []Entry {
	return []Entry{e}
})

// Chain applies each transform in turn to every output of the previous one.
func Chain(ts ...Transform) Transform {
	return TransformFunc(func(e Entry) []Entry {
		out := []Entry{e}
		for _, t := range ts {
			var next []Entry
			for _, x := range out {
				next = append(next, t.Apply(x)...)
			}
			out = next
		}
		return out
	})
}

// Rule derives an allomorph from every entry it matches. Empty match fields
// match anything; empty output fields keep the source value.
type Rule struct {
	MatchPhon string
	MatchSem  string

	Phon  string
	Sem   string
	Gloss string
	Feat  map[string]string
}

func (r Rule) matches(e Entry) bool {
	if r.MatchPhon != "" && r.MatchPhon != e.phon {
		return false
	}
	if r.MatchSem != "" && r.MatchSem != e.sem {
		return false
	}
	return true
}

func (r Rule) derive(e Entry) Entry {
	out := e
	if r.Phon != "" {
		out = out.WithPhon(r.Phon)
	}
	if r.Sem != "" {
		out = out.WithSem(r.Sem)
	}
	if r.Gloss != "" {
		out = out.WithGloss(r.Gloss)
	}
	for k, v := range r.Feat {
		out = out.WithFeature(k, v)
	}
	return out
}

// RuleTransform keeps every entry and adds one variant per matching rule.
type RuleTransform struct {
	Rules []Rule
}

// Apply implements Transform.
func (t RuleTransform) Apply(e Entry) []Entry {
	out := []Entry{e}
	for _, r := range t.Rules {
		if r.matches(e) {
			out = append(out, r.derive(e))
		}
	}
	return out
}
