/*
Package lexicon is the core of morpho: a store of lexical entries keyed by
surface form, and an engine that enumerates every way to segment a string
into a sequence of stored entries.

Entries live in a Patricia trie so that all stored keys which are prefixes of
a query can be enumerated in one walk:

	lex := lexicon.New("demo")
	_ = lex.InsertBatch([]lexicon.Entry{
		lexicon.NewEntry("aru"),
		lexicon.NewEntry("i"),
		lexicon.NewEntry("ta", lexicon.WithSem("past")),
	})
	for _, seg := range lex.Match("aruita") {
		fmt.Println(seg.Join("-"))
	}

Match memoises results per suffix in a cache owned by the Lexicon. Every
mutator (Insert, InsertBatch, Delete, Rewrite, Merge) invalidates that cache,
so results never go stale.

# Transforms

A Transform expands one entry into a set of entries, e.g. to add allomorphs.
Rewrite applies it in place, Derive returns a new Lexicon and leaves the
source untouched:

	withExist := lexicon.RuleTransform{Rules: []lexicon.Rule{
		{MatchPhon: "ar", Sem: "exist"},
	}}
	expanded, err := lex.Derive(withExist)
*/
package lexicon
