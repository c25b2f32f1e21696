package dictionary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/morpho/pkg/lexicon"
)

// ManifestFile is the optional per-model manifest looked up in a model directory.
const ManifestFile = "model.toml"

// Manifest describes how the documents of a model directory are combined.
type Manifest struct {
	Name      string     `toml:"name"`
	Transform string     `toml:"transform"`
	Rules     []RuleSpec `toml:"rule"`
}

// RuleSpec is the manifest form of a lexicon.Rule.
type RuleSpec struct {
	MatchPhon string            `toml:"match_phon"`
	MatchSem  string            `toml:"match_sem"`
	Phon      string            `toml:"phon"`
	Sem       string            `toml:"sem"`
	Gloss     string            `toml:"gloss"`
	Feat      map[string]string `toml:"feat"`
}

// Rule converts the manifest rule into a lexicon.Rule.
func (s RuleSpec) Rule() lexicon.Rule {
	return lexicon.Rule{
		MatchPhon: s.MatchPhon,
		MatchSem:  s.MatchSem,
		Phon:      s.Phon,
		Sem:       s.Sem,
		Gloss:     s.Gloss,
		Feat:      s.Feat,
	}
}

// ReadManifest parses a manifest file. Keys the manifest does not know are
// reported as errors. The raw text is returned alongside for display.
func ReadManifest(path string) (Manifest, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, "", err
	}
	m, err := ParseManifest(string(data))
	if err != nil {
		return Manifest{}, "", fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, string(data), nil
}

// ParseManifest decodes manifest text.
func ParseManifest(text string) (Manifest, error) {
	var m Manifest
	md, err := toml.Decode(text, &m)
	if err != nil {
		return Manifest{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Manifest{}, fmt.Errorf("%w: %s", ErrUnknownManifestKey, strings.Join(keys, ", "))
	}
	return m, nil
}

// readManifestIfPresent returns the zero manifest when dir has none.
func readManifestIfPresent(path string) (Manifest, string, error) {
	m, src, err := ReadManifest(path)
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, "", nil
	}
	return m, src, err
}
