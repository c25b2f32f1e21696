package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	e := NewEntry("ar", WithSem("be"))
	assert.Equal(t, []Entry{e}, Identity.Apply(e))
}

func TestChain(t *testing.T) {
	double := TransformFunc(func(e Entry) []Entry {
		return []Entry{e, e.WithGloss("2")}
	})
	drop := TransformFunc(func(e Entry) []Entry {
		if e.Gloss() == "2" {
			return nil
		}
		return []Entry{e}
	})

	e := NewEntry("a")
	assert.Len(t, Chain(double, double).Apply(e), 4)
	assert.Equal(t, []Entry{e}, Chain(double, drop).Apply(e))
	assert.Equal(t, []Entry{e}, Chain().Apply(e))
}

func TestRuleTransform(t *testing.T) {
	rules := RuleTransform{Rules: []Rule{
		{MatchPhon: "ar", Sem: "exist"},
		{MatchPhon: "ta", MatchSem: "past", Gloss: "PST", Feat: map[string]string{"pos": "aux"}},
		{MatchPhon: "aru", Phon: "at"},
	}}

	testCases := []struct {
		name     string
		in       Entry
		expected []Entry
	}{
		{
			name:     "allomorph with new meaning",
			in:       NewEntry("ar"),
			expected: []Entry{NewEntry("ar"), NewEntry("ar", WithSem("exist"))},
		},
		{
			name: "match on sem",
			in:   NewEntry("ta", WithSem("past")),
			expected: []Entry{
				NewEntry("ta", WithSem("past")),
				NewEntry("ta", WithSem("past"), WithGloss("PST"), WithFeature("pos", "aux")),
			},
		},
		{
			name:     "sem mismatch",
			in:       NewEntry("ta", WithSem("field")),
			expected: []Entry{NewEntry("ta", WithSem("field"))},
		},
		{
			name:     "phon change",
			in:       NewEntry("aru"),
			expected: []Entry{NewEntry("aru"), NewEntry("at")},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rules.Apply(tc.in))
		})
	}
}

func TestRuleTransformRewrite(t *testing.T) {
	l := newTestLexicon(t,
		NewEntry("ar"),
		NewEntry("aru"),
		NewEntry("i"),
		NewEntry("ta", WithSem("past")),
		NewEntry("ta", WithSem("field")),
	)
	require.NoError(t, l.Rewrite(RuleTransform{Rules: []Rule{{MatchPhon: "ar", Sem: "exist"}}}))
	l.Delete(NewEntry("ar"))

	assert.Equal(t, []Entry{NewEntry("ar", WithSem("exist"))}, l.Lookup("ar"))
	assert.Len(t, l.Match("aruita"), 2)

	got := l.Match("arita")
	require.Len(t, got, 2)
	for _, seg := range got {
		assert.Equal(t, "exist", seg[0].Sem())
	}
}
