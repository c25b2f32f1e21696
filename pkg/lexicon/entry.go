package lexicon

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Feature is a single key/value pair of an entry's feature bundle.
type Feature struct {
	Key   string
	Value string
}

// Entry is an immutable lexical item keyed by its surface form.
//
// Entries are plain comparable values: two entries are == exactly when
// phon, feat, sem and gloss are equal, so an Entry can be used directly as
// a map key. The feature set is kept in a canonical encoding that does not
// depend on insertion order.
type Entry struct {
	phon  string
	feat  string
	sem   string
	gloss string
	hash  uint64
}

// EntryOption configures optional fields in NewEntry.
type EntryOption func(*entryFields)

type entryFields struct {
	feat  map[string]string
	sem   string
	gloss string
}

// WithFeat sets the whole feature bundle. Later options override earlier keys.
func WithFeat(feat map[string]string) EntryOption {
	return func(f *entryFields) {
		for k, v := range feat {
			f.feat[k] = v
		}
	}
}

// WithFeature adds a single feature.
func WithFeature(key, value string) EntryOption {
	return func(f *entryFields) {
		f.feat[key] = value
	}
}

// WithSem sets the meaning.
func WithSem(sem string) EntryOption {
	return func(f *entryFields) {
		f.sem = sem
	}
}

// WithGloss sets the secondary label.
func WithGloss(gloss string) EntryOption {
	return func(f *entryFields) {
		f.gloss = gloss
	}
}

// NewEntry builds an entry with the given surface form. An empty phon is
// accepted here but rejected by every Lexicon mutator.
func NewEntry(phon string, opts ...EntryOption) Entry {
	fields := entryFields{feat: make(map[string]string)}
	for _, opt := range opts {
		opt(&fields)
	}
	return makeEntry(phon, encodeFeat(fields.feat), fields.sem, fields.gloss)
}

func makeEntry(phon, feat, sem, gloss string) Entry {
	d := xxhash.New()
	for _, s := range [...]string{phon, feat, sem, gloss} {
		d.WriteString(strconv.Itoa(len(s)))
		d.WriteString(":")
		d.WriteString(s)
	}
	return Entry{phon: phon, feat: feat, sem: sem, gloss: gloss, hash: d.Sum64()}
}

// Phon returns the surface form.
func (e Entry) Phon() string { return e.phon }

// Sem returns the meaning.
func (e Entry) Sem() string { return e.sem }

// Gloss returns the secondary label.
func (e Entry) Gloss() string { return e.gloss }

// Hash returns the precomputed structural hash. It is only meaningful within
// a single process.
func (e Entry) Hash() uint64 { return e.hash }

// Feat returns a fresh copy of the feature bundle.
func (e Entry) Feat() map[string]string {
	pairs := decodeFeat(e.feat)
	feat := make(map[string]string, len(pairs))
	for _, p := range pairs {
		feat[p.Key] = p.Value
	}
	return feat
}

// Features returns the feature bundle sorted by key.
func (e Entry) Features() []Feature {
	return decodeFeat(e.feat)
}

// Feature looks up one feature value.
func (e Entry) Feature(key string) (string, bool) {
	for _, p := range decodeFeat(e.feat) {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Validate reports whether the entry may be stored in a Lexicon.
func (e Entry) Validate() error {
	if e.phon == "" {
		return ErrEmptyPhon
	}
	return nil
}

// WithPhon returns a copy of e with a different surface form.
func (e Entry) WithPhon(phon string) Entry {
	return makeEntry(phon, e.feat, e.sem, e.gloss)
}

// WithSem returns a copy of e with a different meaning.
func (e Entry) WithSem(sem string) Entry {
	return makeEntry(e.phon, e.feat, sem, e.gloss)
}

// WithGloss returns a copy of e with a different secondary label.
func (e Entry) WithGloss(gloss string) Entry {
	return makeEntry(e.phon, e.feat, e.sem, gloss)
}

// WithFeature returns a copy of e with key set to value.
func (e Entry) WithFeature(key, value string) Entry {
	feat := e.Feat()
	feat[key] = value
	return makeEntry(e.phon, encodeFeat(feat), e.sem, e.gloss)
}

// WithoutFeature returns a copy of e without key.
func (e Entry) WithoutFeature(key string) Entry {
	feat := e.Feat()
	delete(feat, key)
	return makeEntry(e.phon, encodeFeat(feat), e.sem, e.gloss)
}

// Label renders the entry as {phon:sem}.
func (e Entry) Label() string {
	return "{" + e.phon + ":" + e.sem + "}"
}

// String renders the entry as {phon:sem#HASH}.
func (e Entry) String() string {
	return fmt.Sprintf("{%s:%s#%X}", e.phon, e.sem, e.hash)
}

// SortEntries orders entries by phon, sem, gloss and then features.
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, compare)
}

// compare orders entries by phon, sem, gloss and then features.
func compare(a, b Entry) int {
	if c := strings.Compare(a.phon, b.phon); c != 0 {
		return c
	}
	if c := strings.Compare(a.sem, b.sem); c != 0 {
		return c
	}
	if c := strings.Compare(a.gloss, b.gloss); c != 0 {
		return c
	}
	return strings.Compare(a.feat, b.feat)
}

// encodeFeat writes pairs sorted by key as "<len>:<key><len>:<value>" so that
// arbitrary keys and values round-trip without escaping.
func encodeFeat(feat map[string]string) string {
	if len(feat) == 0 {
		return ""
	}
	keys := make([]string, 0, len(feat))
	for k := range feat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		writeField(&b, k)
		writeField(&b, feat[k])
	}
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func decodeFeat(enc string) []Feature {
	var pairs []Feature
	for len(enc) > 0 {
		var key, value string
		key, enc = readField(enc)
		value, enc = readField(enc)
		pairs = append(pairs, Feature{Key: key, Value: value})
	}
	return pairs
}

func readField(enc string) (string, string) {
	sep := strings.IndexByte(enc, ':')
	if sep < 0 {
		panic("lexicon: corrupt feature encoding")
	}
	n, err := strconv.Atoi(enc[:sep])
	if err != nil {
		panic("lexicon: corrupt feature encoding")
	}
	start := sep + 1
	return enc[start : start+n], enc[start+n:]
}
