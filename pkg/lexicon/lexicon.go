package lexicon

import (
	"errors"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Untitled is the name given to lexicons created without one.
const Untitled = "<UNTITLED>"

type entrySet map[Entry]struct{}

var errStopVisit = errors.New("stop visit")

// Lexicon maps surface forms to sets of entries and segments arbitrary
// strings into sequences of them.
//
// All methods are safe for concurrent use: reads and Match share a read
// lock, mutations take the write lock and invalidate the match cache.
type Lexicon struct {
	name      string
	mu        sync.RWMutex
	entries   *patricia.Trie
	size      int
	cache     *matchCache
	cacheSize int
	logger    *log.Logger
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithCacheSize bounds the number of memoised queries.
func WithCacheSize(n int) Option {
	return func(l *Lexicon) {
		l.cacheSize = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Lexicon) {
		l.logger = logger
	}
}

// New creates an empty lexicon.
func New(name string, opts ...Option) *Lexicon {
	if name == "" {
		name = Untitled
	}
	l := &Lexicon{
		name:      name,
		entries:   patricia.NewTrie(),
		cacheSize: DefaultCacheSize,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = newMatchCache(l.cacheSize)
	return l
}

// options reproduces the configuration of l for derived lexicons.
func (l *Lexicon) options() []Option {
	return []Option{WithCacheSize(l.cacheSize), WithLogger(l.logger)}
}

// Name returns the lexicon's name.
func (l *Lexicon) Name() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.name
}

// SetName renames the lexicon.
func (l *Lexicon) SetName(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.name = name
}

// Insert stores e under its phon. Inserting an entry that is already present
// is a no-op.
func (l *Lexicon) Insert(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	insertInto(l.entries, e, &l.size)
	l.cache.invalidate()
	return nil
}

// InsertBatch stores every entry and invalidates the cache once. Nothing is
// stored if any entry is invalid.
func (l *Lexicon) InsertBatch(entries []Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		insertInto(l.entries, e, &l.size)
	}
	l.cache.invalidate()
	l.logger.Debugf("Inserted batch of %d entries into %s", len(entries), l.name)
	return nil
}

// Delete removes e if present. Keys left without entries are pruned.
func (l *Lexicon) Delete(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := patricia.Prefix(e.phon)
	if item := l.entries.Get(key); item != nil {
		set := item.(entrySet)
		if _, ok := set[e]; ok {
			delete(set, e)
			l.size--
			if len(set) == 0 {
				l.entries.Delete(key)
			}
		}
	}
	l.cache.invalidate()
}

// Rewrite replaces the whole store with t applied to every entry. The new
// store is built aside and swapped in only if every produced entry is valid;
// otherwise the lexicon is left untouched.
func (l *Lexicon) Rewrite(t Transform) error {
	if t == nil {
		return ErrNilTransform
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	next, size, err := buildStore(visitAll(l.entries), t)
	if err != nil {
		return err
	}
	l.entries = next
	l.size = size
	l.cache.invalidate()
	l.logger.Debugf("Rewrote %s: %d entries", l.name, size)
	return nil
}

// Derive returns a new lexicon with the same name holding t applied to every
// entry of l. l itself is not modified.
func (l *Lexicon) Derive(t Transform) (*Lexicon, error) {
	if t == nil {
		return nil, ErrNilTransform
	}
	l.mu.RLock()
	source := visitAll(l.entries)
	name := l.name
	opts := l.options()
	l.mu.RUnlock()

	next, size, err := buildStore(source, t)
	if err != nil {
		return nil, err
	}
	derived := New(name, opts...)
	derived.entries = next
	derived.size = size
	return derived, nil
}

// Merge adds every entry of other to l. other is not modified.
func (l *Lexicon) Merge(other *Lexicon) {
	if other == nil || other == l {
		return
	}
	incoming := other.Entries()

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range incoming {
		insertInto(l.entries, e, &l.size)
	}
	l.cache.invalidate()
}

// Union builds a fresh lexicon holding the entries of all given lexicons.
func Union(name string, lexicons []*Lexicon, opts ...Option) *Lexicon {
	res := New(name, opts...)
	for _, other := range lexicons {
		if other == nil {
			continue
		}
		for _, e := range other.Entries() {
			insertInto(res.entries, e, &res.size)
		}
	}
	// fresh cache, nothing to invalidate
	return res
}

// Lookup returns the entries stored under exactly phon, sorted.
func (l *Lexicon) Lookup(phon string) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	item := l.entries.Get(patricia.Prefix(phon))
	if item == nil {
		return []Entry{}
	}
	return sortedSet(item.(entrySet))
}

// HasKey reports whether any entry is stored under phon.
func (l *Lexicon) HasKey(phon string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries.Get(patricia.Prefix(phon)) != nil
}

// Entries returns every stored entry exactly once.
func (l *Lexicon) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return visitAll(l.entries)
}

// Each calls fn for every stored entry until fn returns false. fn must not
// mutate the lexicon.
func (l *Lexicon) Each(fn func(Entry) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_ = l.entries.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		for e := range item.(entrySet) {
			if !fn(e) {
				return errStopVisit
			}
		}
		return nil
	})
}

// Keys returns every distinct surface form, sorted.
func (l *Lexicon) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var keys []string
	_ = l.entries.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		keys = append(keys, string(p))
		return nil
	})
	slices.Sort(keys)
	return keys
}

// Size returns the total number of stored entries.
func (l *Lexicon) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Stats returns counters about the store and its match cache.
func (l *Lexicon) Stats() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := 0
	_ = l.entries.Visit(func(patricia.Prefix, patricia.Item) error {
		keys++
		return nil
	})
	stats := map[string]int{
		"entries": l.size,
		"keys":    keys,
	}
	for k, v := range l.cache.stats() {
		stats[k] = v
	}
	return stats
}

func insertInto(trie *patricia.Trie, e Entry, size *int) {
	key := patricia.Prefix(e.phon)
	if item := trie.Get(key); item != nil {
		set := item.(entrySet)
		if _, ok := set[e]; ok {
			return
		}
		set[e] = struct{}{}
	} else {
		trie.Insert(key, entrySet{e: {}})
	}
	*size++
}

func buildStore(source []Entry, t Transform) (*patricia.Trie, int, error) {
	next := patricia.NewTrie()
	size := 0
	for _, old := range source {
		for _, e := range t.Apply(old) {
			if err := e.Validate(); err != nil {
				return nil, 0, err
			}
			insertInto(next, e, &size)
		}
	}
	return next, size, nil
}

func visitAll(trie *patricia.Trie) []Entry {
	var out []Entry
	_ = trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		for e := range item.(entrySet) {
			out = append(out, e)
		}
		return nil
	})
	return out
}

func sortedSet(set entrySet) []Entry {
	out := make([]Entry, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.SortFunc(out, compare)
	return out
}
