// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the morpho shell and batch analyser.

morpho loads a lexicon model from a directory and prints every way an input
word can be segmented into entries of the lexicon. Without arguments it starts
an interactive shell; with arguments it analyses each of them and exits.

# Usage

Start the shell on a model directory:

	morpho -m models/jp

Analyse words in batch mode with debug logging:

	morpho -m models/jp -d aruta itta

Use a different separator between the entries of a segmentation:

	morpho -m models/jp -sep " + " aruta

A model directory holds *.dict.yaml, *.dict.yml or *.dict.msgpack documents
and an optional model.toml manifest that names the model and the transform
applied to its entries. See package dictionary for the layout.

# Configuration

Runtime configuration lives in a TOML file, created with defaults at
~/.config/morpho/config.toml when missing:

	[lexicon]
	cache_size = 10240

	[shell]
	separator = "-"
	sort_results = true
	show_hash = false
	prompt = "[morpho]>> "

	[loader]
	workers = 4
	model_dir = ""

	[log]
	level = "warn"

Every value can be overridden with a MORPHO_* environment variable, for
example MORPHO_SEPARATOR or MORPHO_MODEL_DIR. Flags override both.

# Shell

The shell reads one line at a time. Lines starting with ':' are commands
(:help lists them), anything else is analysed word by word:

	[morpho]>> aruta
	INFO: analyzing word #1: aruta
	{ar:root}-{uta:song}
	{aru:exist}-{ta:past}

# Command Line Flags

	-m string
	    Model directory to load
	-config string
	    Path to a config file
	-sep string
	    Separator between entries of a segmentation
	-hash
	    Print entry hashes
	-d  Enable debug mode with detailed logging
	-version
	    Show current version
	-rebuild-config
	    Overwrite the default config file with defaults
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/morpho/internal/cli"
	"github.com/bastiangx/morpho/internal/logger"
	"github.com/bastiangx/morpho/internal/utils"
	"github.com/bastiangx/morpho/pkg/config"
	"github.com/bastiangx/morpho/pkg/dictionary"
	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "morpho"
	gh      = "https://github.com/bastiangx/morpho"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, model loading and the shell together.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	modelDir := flag.String("m", "", "Model directory to load (default from config)")
	configPath := flag.String("config", "", "Path to a config file")
	separator := flag.String("sep", "", "Separator between entries of a segmentation (default from config)")
	showHash := flag.Bool("hash", false, "Print entry hashes")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !*debugMode {
		log.SetLevel(appConfig.LogLevel())
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	opts := cli.Options{
		Separator:   appConfig.Shell.Separator,
		SortResults: appConfig.Shell.SortResults,
		ShowHash:    appConfig.Shell.ShowHash || *showHash,
		Prompt:      appConfig.Shell.Prompt,
	}
	if *separator != "" {
		opts.Separator = *separator
	}

	loadOpts := []dictionary.Option{
		dictionary.WithWorkers(appConfig.Loader.Workers),
		dictionary.WithLexiconOptions(
			lexicon.WithCacheSize(appConfig.Lexicon.CacheSize),
			lexicon.WithLogger(logger.New("lexicon")),
		),
	}

	ctx := context.Background()
	dir := *modelDir
	if dir == "" {
		dir = appConfig.Loader.ModelDir
	}

	var model *dictionary.Model
	if dir != "" {
		dir = resolveModelDir(dir, activePath)
		model, err = dictionary.LoadDir(ctx, dir, loadOpts...)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		log.Debugf("Loaded model %s from %s: %d entries", model.Name, model.SourceDir, model.Lexicon.Size())
	} else {
		log.Warn("No model dir specified, running with empty lexicon...")
	}
	rt := dictionary.NewRuntime(model, loadOpts...)

	// Batch mode: analyse the arguments and exit.
	if words := flag.Args(); len(words) > 0 {
		cli.NewInputHandler(rt, os.Stdin, os.Stdout, opts).Analyze(words)
		return
	}

	log.SetReportTimestamp(false)
	showStartupInfo(rt.Model())
	if err := cli.NewInputHandler(rt, os.Stdin, os.Stdout, opts).Start(ctx); err != nil {
		log.Fatalf("Shell error: %v", err)
	}
}

// resolveModelDir looks for dir next to the working directory, the executable
// and the config directory.
func resolveModelDir(dir, configPath string) string {
	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	pr, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Debugf("Path resolver unavailable, using %s as given: %v", dir, err)
		return dir
	}
	return pr.ResolveModelDir(dir, dictionary.IsModelDir)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ morpho ] Segments words into lexicon entries")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the loaded model.
func showStartupInfo(model *dictionary.Model) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("model: %s (%d entries)", model.Name, model.Lexicon.Size())
	log.Info("type :help for commands, :exit or Ctrl+D to leave")

	log.SetLevel(currentLevel)
}
