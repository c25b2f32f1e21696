package dictionary

import (
	"context"
	"sync"

	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/log"
)

// SessionName names the model a Runtime starts with when nothing was loaded.
const SessionName = "<SESSION>"

// Runtime holds the active model and swaps it on reload.
type Runtime struct {
	mu    sync.RWMutex
	model *Model
	opts  []Option
}

// NewRuntime creates a runtime around model. A nil model is replaced by an
// empty session model. opts are reused for every reload.
func NewRuntime(model *Model, opts ...Option) *Runtime {
	if model == nil {
		o := loadOptions{}
		for _, opt := range opts {
			opt(&o)
		}
		model = &Model{
			Name:      SessionName,
			Transform: TransformIdentity,
			Lexicon:   lexicon.New(SessionName, o.lexOpts...),
		}
	}
	return &Runtime{model: model, opts: opts}
}

// Model returns the active model.
func (rt *Runtime) Model() *Model {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.model
}

// Lexicon returns the active model's lexicon.
func (rt *Runtime) Lexicon() *lexicon.Lexicon {
	return rt.Model().Lexicon
}

// Reload loads dir and makes it the active model. An empty dir reloads the
// active model's source directory. On failure the active model is kept.
func (rt *Runtime) Reload(ctx context.Context, dir string) (*Model, error) {
	if dir == "" {
		dir = rt.Model().SourceDir
		if dir == "" {
			return nil, ErrNoModel
		}
	}

	model, err := LoadDir(ctx, dir, rt.opts...)
	if err != nil {
		log.Warnf("Reload of %s failed, keeping %s: %v", dir, rt.Model().Name, err)
		return nil, err
	}

	rt.mu.Lock()
	rt.model = model
	rt.mu.Unlock()
	log.Debugf("Active model is now %s (%d entries)", model.Name, model.Lexicon.Size())
	return model, nil
}
