/*
Package codec reads and writes lexicon documents.

A document is a versioned list of entries. The YAML form is meant to be written
by hand:

	version: 0
	content:
	  - phon: aru
	    sem: walk
	    feat:
	      pos: v
	  - phon: ta
	    sem: past
	    gloss: PST

The MessagePack form carries the same fields and is used for binary snapshots.
Feature values may be any scalar in the source document; they are stored as
strings.
*/
package codec

import (
	"fmt"
	"strconv"

	"github.com/bastiangx/morpho/pkg/lexicon"
)

// CurrentVersion is the document version written by this package.
const CurrentVersion = 0

// Document is the serialised form of a lexicon.
type Document struct {
	Version int        `yaml:"version" msgpack:"version"`
	Content []EntryDoc `yaml:"content" msgpack:"content"`
}

// EntryDoc is the serialised form of a single entry. Feat is a flat mapping.
type EntryDoc struct {
	Phon  string         `yaml:"phon" msgpack:"phon"`
	Feat  map[string]any `yaml:"feat,omitempty" msgpack:"feat,omitempty"`
	Sem   string         `yaml:"sem,omitempty" msgpack:"sem,omitempty"`
	Gloss string         `yaml:"gloss,omitempty" msgpack:"gloss,omitempty"`
}

// FromLexicon snapshots every entry of lex in a stable order.
func FromLexicon(lex *lexicon.Lexicon) Document {
	entries := lex.Entries()
	lexicon.SortEntries(entries)

	doc := Document{Version: CurrentVersion, Content: make([]EntryDoc, 0, len(entries))}
	for _, e := range entries {
		doc.Content = append(doc.Content, FromEntry(e))
	}
	return doc
}

// FromEntry converts an entry to its document form.
func FromEntry(e lexicon.Entry) EntryDoc {
	doc := EntryDoc{Phon: e.Phon(), Sem: e.Sem(), Gloss: e.Gloss()}
	if features := e.Features(); len(features) > 0 {
		doc.Feat = make(map[string]any, len(features))
		for _, f := range features {
			doc.Feat[f.Key] = f.Value
		}
	}
	return doc
}

// Entry converts the document form back into an entry.
func (d EntryDoc) Entry() (lexicon.Entry, error) {
	if d.Phon == "" {
		return lexicon.Entry{}, ErrMissingPhon
	}
	feat := make(map[string]string, len(d.Feat))
	for k, v := range d.Feat {
		s, err := scalarString(v)
		if err != nil {
			return lexicon.Entry{}, fmt.Errorf("feature %q: %w", k, err)
		}
		feat[k] = s
	}
	return lexicon.NewEntry(d.Phon,
		lexicon.WithFeat(feat),
		lexicon.WithSem(d.Sem),
		lexicon.WithGloss(d.Gloss),
	), nil
}

// Entries validates the document and converts its content. source names the
// document in errors.
func (d Document) Entries(source string) ([]lexicon.Entry, error) {
	if d.Version < 0 || d.Version > CurrentVersion {
		return nil, &DocumentError{
			Source: source,
			Index:  -1,
			Err:    fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version),
		}
	}
	entries := make([]lexicon.Entry, 0, len(d.Content))
	for i, ed := range d.Content {
		e, err := ed.Entry()
		if err != nil {
			return nil, &DocumentError{Source: source, Index: i, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ToLexicon reconstructs a lexicon from a document with a single bulk load.
func (d Document) ToLexicon(name, source string, opts ...lexicon.Option) (*lexicon.Lexicon, error) {
	entries, err := d.Entries(source)
	if err != nil {
		return nil, err
	}
	lex := lexicon.New(name, opts...)
	if err := lex.InsertBatch(entries); err != nil {
		return nil, &DocumentError{Source: source, Index: -1, Err: err}
	}
	return lex, nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
