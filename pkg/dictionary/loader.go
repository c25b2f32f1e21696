/*
Package dictionary loads lexicon models from directories.

A model directory holds any number of dictionary documents, found recursively
by the patterns of package codec (*.dict.yaml, *.dict.yml, *.dict.msgpack),
and an optional model.toml manifest:

	name = "japanese"
	transform = "rules"

	[[rule]]
	match_phon = "aru"
	phon = "ari"
	gloss = "CONT"

Documents are decoded concurrently, combined into one lexicon and passed
through the manifest's transform.
*/
package dictionary

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bastiangx/morpho/pkg/codec"
	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Model is a lexicon loaded from a directory.
type Model struct {
	Name      string
	SourceDir string
	// Transform is the registered name of the transform that was applied.
	Transform string
	Lexicon   *lexicon.Lexicon
	// Documents lists the loaded documents relative to SourceDir.
	Documents []string
	// ManifestSource is the raw manifest text, empty without one.
	ManifestSource string
}

// Option configures LoadDir.
type Option func(*loadOptions)

type loadOptions struct {
	name    string
	workers int
	lexOpts []lexicon.Option
}

// WithName overrides the model name from the manifest and directory.
func WithName(name string) Option {
	return func(o *loadOptions) {
		o.name = name
	}
}

// WithWorkers bounds the number of documents decoded at once.
func WithWorkers(n int) Option {
	return func(o *loadOptions) {
		o.workers = n
	}
}

// WithLexiconOptions configures the lexicons the loader creates.
func WithLexiconOptions(opts ...lexicon.Option) Option {
	return func(o *loadOptions) {
		o.lexOpts = append(o.lexOpts, opts...)
	}
}

// LoadDir loads the model stored in dir. The model name is taken from
// WithName, then the manifest, then the directory's base name.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Model, error) {
	o := loadOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	manifest, manifestSrc, err := readManifestIfPresent(filepath.Join(abs, ManifestFile))
	if err != nil {
		return nil, err
	}
	transformName, transform, err := buildTransform(manifest)
	if err != nil {
		return nil, err
	}

	name := o.name
	if name == "" {
		name = manifest.Name
	}
	if name == "" {
		name = filepath.Base(abs)
	}

	files, err := findDocuments(abs)
	if err != nil {
		return nil, err
	}
	log.Debugf("Model %s: %d documents in %s", name, len(files), abs)

	parts, err := loadDocuments(ctx, files, o)
	if err != nil {
		return nil, err
	}

	lex := lexicon.Union(name, parts, o.lexOpts...)
	if transformName != TransformIdentity {
		if lex, err = lex.Derive(transform); err != nil {
			return nil, fmt.Errorf("transform %q: %w", transformName, err)
		}
	}

	docs := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(abs, f)
		if err != nil {
			rel = f
		}
		docs = append(docs, rel)
	}

	log.Debugf("Model %s loaded: %d entries, transform %s", name, lex.Size(), transformName)
	return &Model{
		Name:           name,
		SourceDir:      abs,
		Transform:      transformName,
		Lexicon:        lex,
		Documents:      docs,
		ManifestSource: manifestSrc,
	}, nil
}

// IsModelDir reports whether dir looks like a model: a directory holding a
// manifest or at least one dictionary document.
func IsModelDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err == nil {
		return true
	}
	files, err := findDocuments(dir)
	return err == nil && len(files) > 0
}

// findDocuments walks dir for dictionary documents in a stable order.
func findDocuments(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && codec.IsDictionaryFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan model %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// loadDocuments decodes every file with at most o.workers in flight. The first
// failure cancels the rest.
func loadDocuments(ctx context.Context, files []string, o loadOptions) ([]*lexicon.Lexicon, error) {
	parts := make([]*lexicon.Lexicon, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := codec.ReadFile(path)
			if err != nil {
				return err
			}
			part, err := doc.ToLexicon(path, path, o.lexOpts...)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// Save writes lex to path in the format implied by its extension.
func Save(lex *lexicon.Lexicon, path string) error {
	if err := codec.WriteFile(path, codec.FromLexicon(lex)); err != nil {
		return err
	}
	log.Debugf("Saved %s (%d entries) to %s", lex.Name(), lex.Size(), path)
	return nil
}
