// Package cli implements the interactive morpho shell.
//
// Each input line is either a command starting with ':' or a list of words to
// analyse. Every segmentation of a word is printed as its entries joined by a
// separator:
//
//	[morpho]>> aruta
//	INFO: analyzing word #1: aruta
//	{aru:exist}-{ta:past}
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bastiangx/morpho/pkg/codec"
	"github.com/bastiangx/morpho/pkg/dictionary"
	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/log"
)

// Options controls how the shell renders results.
type Options struct {
	Separator   string
	SortResults bool
	ShowHash    bool
	Prompt      string
}

// InputHandler reads lines from an io.Reader and routes them against the
// active model of a dictionary.Runtime.
type InputHandler struct {
	runtime      *dictionary.Runtime
	opts         Options
	in           io.Reader
	term         *terminal
	requestCount int
}

const helpText = `commands:
  :pwd                           print the working directory
  :reload [dir]                  load a model directory (default: reload the current one)
  :model                         describe the active model and list its entries
  :manifest                      print the active model's manifest
  :match <words...>              analyse words
  :add <phon> [sem] [gloss]      add an entry
  :delete <phon> [sem] [gloss]   delete entries under phon matching sem and gloss
  :save <file>                   write the lexicon to a .dict.yaml or .dict.msgpack file
  :keys                          list surface forms
  :stats                         show lexicon and cache counters
  :help                          show this help
  :exit, :quit                   leave the shell
anything else is analysed word by word`

// NewInputHandler creates a shell over rt. Empty options take the defaults.
func NewInputHandler(rt *dictionary.Runtime, in io.Reader, out io.Writer, opts Options) *InputHandler {
	if opts.Separator == "" {
		opts.Separator = "-"
	}
	if opts.Prompt == "" {
		opts.Prompt = "[morpho]>> "
	}
	return &InputHandler{
		runtime: rt,
		opts:    opts,
		in:      in,
		term:    newTerminal(out),
	}
}

// Start runs the prompt loop until the input ends, :exit is entered or ctx is
// done. Reaching the end of input is not an error.
func (h *InputHandler) Start(ctx context.Context) error {
	scanner := bufio.NewScanner(h.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.term.showPrompt(h.opts.Prompt)
		if !scanner.Scan() {
			h.term.println("")
			return scanner.Err()
		}
		if quit := h.Execute(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Execute routes a single line and reports whether the shell should exit.
func (h *InputHandler) Execute(ctx context.Context, line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	command, args := tokens[0], tokens[1:]

	switch command {
	case ":pwd":
		h.cmdPwd()
	case ":reload":
		h.cmdReload(ctx, args)
	case ":model":
		h.cmdModel()
	case ":manifest":
		h.cmdManifest()
	case ":match":
		h.Analyze(args)
	case ":add":
		h.cmdAdd(args)
	case ":delete":
		h.cmdDelete(args)
	case ":save":
		h.cmdSave(args)
	case ":keys":
		h.cmdKeys()
	case ":stats":
		h.cmdStats()
	case ":help":
		h.term.println(helpText)
	case ":exit", ":quit":
		return true
	default:
		if strings.HasPrefix(command, ":") {
			h.term.giveError("invalid command " + command + " (try :help)")
			return false
		}
		h.Analyze(tokens)
	}
	return false
}

// Analyze prints every segmentation of each word.
func (h *InputHandler) Analyze(words []string) {
	lex := h.runtime.Lexicon()
	for num, word := range words {
		h.requestCount++
		h.term.giveInfo("INFO", fmt.Sprintf("analyzing word #%d: %s", num+1, word))

		start := time.Now()
		candidates := lex.Match(word)
		log.Debugf("Took [ %v ] for '%s': %d results", time.Since(start), word, len(candidates))

		if len(candidates) == 0 {
			h.term.giveInfo("INFO", "no matches for "+word)
			continue
		}
		if h.opts.SortResults {
			lexicon.SortSegmentations(candidates)
		}
		for _, seg := range candidates {
			h.term.println(h.render(seg))
		}
	}
}

func (h *InputHandler) render(seg lexicon.Segmentation) string {
	if h.opts.ShowHash {
		return seg.Join(h.opts.Separator)
	}
	return seg.JoinLabels(h.opts.Separator)
}

func (h *InputHandler) cmdPwd() {
	cwd, err := os.Getwd()
	if err != nil {
		h.term.giveError(err.Error())
		return
	}
	h.term.giveInfo("Current Working Directory", cwd)
}

func (h *InputHandler) cmdReload(ctx context.Context, args []string) {
	if len(args) > 1 {
		h.term.giveError("at most one argument is allowed")
		return
	}
	var dir string
	if len(args) == 1 {
		dir = args[0]
		if abs, err := filepath.Abs(dir); err == nil {
			h.term.giveInfo("INFO", "reached the model "+abs)
		}
	}

	model, err := h.runtime.Reload(ctx, dir)
	if err != nil {
		h.term.giveError("failed to load model: " + err.Error())
		return
	}
	h.term.giveInfo("INFO", fmt.Sprintf("successfully incorporated %d entries from %s",
		model.Lexicon.Size(), filepath.Base(model.SourceDir)))
}

func (h *InputHandler) cmdModel() {
	model := h.runtime.Model()
	h.term.giveInfo("Model Name", model.Name)

	path := model.SourceDir
	if path == "" {
		path = "<none>"
	}
	h.term.giveInfo("Path to the Model", path)
	h.term.giveInfo("Transform", model.Transform)
	h.term.giveInfo("Documents", fmt.Sprint(len(model.Documents)))

	entries := model.Lexicon.Entries()
	if len(entries) == 0 {
		h.term.giveInfo("Dictionary", "empty")
		return
	}
	lexicon.SortEntries(entries)
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	h.term.giveInfo("Dictionary", "\n"+strings.Join(lines, "\n"))
}

func (h *InputHandler) cmdManifest() {
	src := h.runtime.Model().ManifestSource
	if src == "" {
		h.term.giveInfo("Manifest", "none")
		return
	}
	h.term.giveInfo("Manifest", "\n"+strings.TrimRight(src, "\n"))
}

// entryArgs parses "<phon> [sem] [gloss]".
func entryArgs(args []string) (phon, sem, gloss string, ok bool) {
	if len(args) < 1 || len(args) > 3 {
		return "", "", "", false
	}
	phon = args[0]
	if len(args) > 1 {
		sem = args[1]
	}
	if len(args) > 2 {
		gloss = args[2]
	}
	return phon, sem, gloss, true
}

func (h *InputHandler) cmdAdd(args []string) {
	phon, sem, gloss, ok := entryArgs(args)
	if !ok {
		h.term.giveError("usage: :add <phon> [sem] [gloss]")
		return
	}
	e := lexicon.NewEntry(phon, lexicon.WithSem(sem), lexicon.WithGloss(gloss))
	if err := h.runtime.Lexicon().Insert(e); err != nil {
		h.term.giveError(err.Error())
		return
	}
	h.term.giveInfo("INFO", "added "+e.String())
}

func (h *InputHandler) cmdDelete(args []string) {
	phon, sem, gloss, ok := entryArgs(args)
	if !ok {
		h.term.giveError("usage: :delete <phon> [sem] [gloss]")
		return
	}
	lex := h.runtime.Lexicon()
	deleted := 0
	for _, e := range lex.Lookup(phon) {
		if sem != "" && e.Sem() != sem {
			continue
		}
		if gloss != "" && e.Gloss() != gloss {
			continue
		}
		lex.Delete(e)
		deleted++
	}
	if deleted == 0 {
		h.term.giveInfo("INFO", "nothing to delete under "+phon)
		return
	}
	h.term.giveInfo("INFO", fmt.Sprintf("deleted %d entries under %s", deleted, phon))
}

func (h *InputHandler) cmdSave(args []string) {
	if len(args) != 1 {
		h.term.giveError("exactly one argument is required")
		return
	}
	lex := h.runtime.Lexicon()
	if err := dictionary.Save(lex, args[0]); err != nil {
		h.term.giveError(err.Error())
		return
	}
	h.term.giveInfo("INFO", fmt.Sprintf("saved %d entries to %s", lex.Size(), args[0]))
	if !codec.IsDictionaryFile(args[0]) {
		h.term.giveInfo("WARN", fmt.Sprintf("%s is not named *.dict.<ext>, :reload will skip it", filepath.Base(args[0])))
	}
}

func (h *InputHandler) cmdKeys() {
	keys := h.runtime.Lexicon().Keys()
	if len(keys) == 0 {
		h.term.giveInfo("Keys", "none")
		return
	}
	h.term.giveInfo("Keys", strings.Join(keys, " "))
}

func (h *InputHandler) cmdStats() {
	stats := h.runtime.Lexicon().Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		h.term.giveInfo(name, fmt.Sprint(stats[name]))
	}
	h.term.giveInfo("requests", fmt.Sprint(h.requestCount))
}
