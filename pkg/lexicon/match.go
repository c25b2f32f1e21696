package lexicon

import (
	"slices"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Segmentation is an ordered sequence of entries whose phons concatenate to
// the query it was produced for.
type Segmentation []Entry

// Phons returns the surface form of every entry in order.
func (s Segmentation) Phons() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.phon
	}
	return out
}

// Join renders every entry with String and joins them with sep.
func (s Segmentation) Join(sep string) string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// JoinLabels is Join without hashes.
func (s Segmentation) JoinLabels(sep string) string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.Label()
	}
	return strings.Join(parts, sep)
}

func (s Segmentation) String() string {
	return s.Join("-")
}

// SortSegmentations orders segmentations for display: fewer tokens first,
// then entry by entry.
func SortSegmentations(segs []Segmentation) {
	slices.SortFunc(segs, func(a, b Segmentation) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		for i := range a {
			if c := compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	})
}

type prefixMatch struct {
	length  int
	entries entrySet
}

// Match returns every segmentation of query into stored entries. It never
// fails: a query without segmentations, including the empty query, yields an
// empty result. Results are distinct and in no particular order.
func (l *Lexicon) Match(query string) []Segmentation {
	if query == "" {
		return []Segmentation{}
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	// cached segmentations stay private to the lexicon
	out := slices.Clone(l.match(query))
	for i := range out {
		out[i] = slices.Clone(out[i])
	}
	return out
}

// match recurses on suffixes of the original query only, so a query of
// length n memoises at most n subproblems. The caller holds the read lock.
//
// Results need no de-duplication: two contributions with the same first
// entry share its phon, hence the same remainder, whose results are distinct.
func (l *Lexicon) match(query string) []Segmentation {
	if res, ok := l.cache.get(query); ok {
		return res
	}

	var candidates []prefixMatch
	_ = l.entries.VisitPrefixes(patricia.Prefix(query), func(p patricia.Prefix, item patricia.Item) error {
		candidates = append(candidates, prefixMatch{length: len(p), entries: item.(entrySet)})
		return nil
	})

	results := []Segmentation{}
	for _, c := range candidates {
		remainder := query[c.length:]
		if remainder == "" {
			for e := range c.entries {
				results = append(results, Segmentation{e})
			}
			continue
		}
		tails := l.match(remainder)
		if len(tails) == 0 {
			continue
		}
		for e := range c.entries {
			for _, tail := range tails {
				seg := make(Segmentation, 0, len(tail)+1)
				seg = append(seg, e)
				seg = append(seg, tail...)
				results = append(results, seg)
			}
		}
	}

	l.cache.put(query, results)
	return results
}
