package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryEquality(t *testing.T) {
	a := NewEntry("ta", WithSem("past"), WithFeature("pos", "aux"), WithFeature("tense", "past"))
	b := NewEntry("ta", WithFeat(map[string]string{"tense": "past", "pos": "aux"}), WithSem("past"))

	assert.True(t, a == b, "feature order must not matter")
	assert.Equal(t, a.Hash(), b.Hash())

	testCases := []struct {
		name  string
		other Entry
	}{
		{"phon", NewEntry("da", WithSem("past"), WithFeature("pos", "aux"), WithFeature("tense", "past"))},
		{"sem", NewEntry("ta", WithSem("field"), WithFeature("pos", "aux"), WithFeature("tense", "past"))},
		{"gloss", NewEntry("ta", WithSem("past"), WithGloss("PST"), WithFeature("pos", "aux"), WithFeature("tense", "past"))},
		{"feat", NewEntry("ta", WithSem("past"), WithFeature("pos", "aux"))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, a == tc.other)
		})
	}
}

func TestEntryAsMapKey(t *testing.T) {
	set := map[Entry]struct{}{}
	set[NewEntry("ar", WithSem("exist"))] = struct{}{}
	set[NewEntry("ar", WithSem("exist"))] = struct{}{}
	set[NewEntry("ar")] = struct{}{}
	assert.Len(t, set, 2)
}

func TestEntryFeatures(t *testing.T) {
	// separators inside keys and values must survive the canonical encoding
	e := NewEntry("x", WithFeat(map[string]string{
		"a:b": "1:2",
		"":    "",
		"12":  "3:",
	}))

	assert.Equal(t, map[string]string{"a:b": "1:2", "": "", "12": "3:"}, e.Feat())
	assert.Equal(t, []Feature{{"", ""}, {"12", "3:"}, {"a:b", "1:2"}}, e.Features())

	v, ok := e.Feature("a:b")
	require.True(t, ok)
	assert.Equal(t, "1:2", v)

	_, ok = e.Feature("missing")
	assert.False(t, ok)
}

func TestEntryFeatReturnsCopy(t *testing.T) {
	e := NewEntry("x", WithFeature("pos", "n"))
	feat := e.Feat()
	feat["pos"] = "v"
	assert.Equal(t, "n", e.Feat()["pos"])
}

func TestEntryEvolve(t *testing.T) {
	base := NewEntry("ar", WithSem("be"), WithFeature("pos", "v"))

	evolved := base.WithSem("exist")
	assert.Equal(t, "exist", evolved.Sem())
	assert.Equal(t, "be", base.Sem())
	assert.Equal(t, base.Feat(), evolved.Feat())

	assert.Equal(t, NewEntry("ar", WithSem("be"), WithFeature("pos", "v"), WithFeature("aspect", "prf")),
		base.WithFeature("aspect", "prf"))
	assert.Equal(t, NewEntry("ar", WithSem("be")), base.WithoutFeature("pos"))
	assert.Equal(t, "at", base.WithPhon("at").Phon())
	assert.Equal(t, "BE", base.WithGloss("BE").Gloss())
}

func TestEntryValidate(t *testing.T) {
	assert.ErrorIs(t, NewEntry("").Validate(), ErrEmptyPhon)
	assert.ErrorIs(t, Entry{}.Validate(), ErrEmptyPhon)
	assert.NoError(t, NewEntry("a").Validate())
}

func TestEntryString(t *testing.T) {
	e := NewEntry("ta", WithSem("past"))
	assert.Equal(t, "{ta:past}", e.Label())
	assert.Contains(t, e.String(), "{ta:past#")
}
