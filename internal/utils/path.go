package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds model directories relative to the places morpho is
// usually run from.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver rooted at the running executable and the
// given config directory.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// Candidates lists where a model named by path is looked for, in order:
// 1. path itself when absolute
// 2. relative to the current working directory
// 3. relative to the executable directory
// 4. under <configDir>/models
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, path))
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, "models", path))
	}
	return candidates
}

// ResolveModelDir returns the first candidate accepted by isModel. If none is
// accepted the first candidate is returned so that the caller reports a
// meaningful path.
func (pr *PathResolver) ResolveModelDir(path string, isModel func(string) bool) string {
	candidates := pr.Candidates(path)
	for _, candidate := range candidates {
		if isModel(candidate) {
			log.Debugf("Found model directory: %s", candidate)
			return candidate
		}
		log.Debugf("Model directory candidate not valid: %s", candidate)
	}
	return candidates[0]
}
