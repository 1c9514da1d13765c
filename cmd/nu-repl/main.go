package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/sophiajt/nu-app/builtin"
	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/log"
	"github.com/sophiajt/nu-app/shell"
)

type config struct {
	Prompt         string `toml:"prompt"`
	History        bool   `toml:"history"`
	TableIndex     bool   `toml:"table_index"`
	FloatPrecision int    `toml:"float_precision"`
}

func defaultReplConfig() config {
	base := engine.DefaultConfig()
	return config{
		Prompt:         "> ",
		History:        true,
		TableIndex:     base.TableIndex,
		FloatPrecision: base.FloatPrecision,
	}
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "nu-app")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nu-app")
}

// loadConfig reads the TOML config, tolerating a missing file but complaining
// about a broken one.
func loadConfig() config {
	cfg := defaultReplConfig()
	path := filepath.Join(configDir(), "config.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Err("cannot read %s: %s", path, err)
	}
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-q] [-c source]\n", os.Args[0])
	os.Exit(1)
}

func main() {
	shell.EnableVTProcessing()

	var oneShot string
	skipConfig := false

	opts, optind, err := getopt.Getopts(os.Args, "c:qh")
	if err != nil {
		log.Err("%s", err)
		usage()
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			oneShot = opt.Value
		case 'q':
			skipConfig = true
		case 'h':
			usage()
		}
	}
	if optind < len(os.Args) {
		usage()
	}

	cfg := defaultReplConfig()
	if !skipConfig {
		cfg = loadConfig()
	}

	state := builtin.DefaultContext()
	state.Config.TableIndex = cfg.TableIndex
	state.Config.FloatPrecision = cfg.FloatPrecision
	stack := shell.NewStack()

	if oneShot != "" {
		if !shell.EvalSource(state, stack, []byte(oneShot), "source", shell.StdinInput(), true) {
			os.Exit(1)
		}
		exitWith(stack)
	}

	// A redirected standard input is a script, not an interactive session.
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Err("cannot read the standard input: %s", err)
			os.Exit(1)
		}
		if !shell.EvalSource(state, stack, src, "source", engine.EmptyData{}, true) {
			os.Exit(1)
		}
		exitWith(stack)
	}

	repl(state, stack, cfg)
}

// exitWith terminates the process with the last recorded exit code.
func exitWith(stack *engine.Stack) {
	code := 0
	if s, ok := stack.GetEnv(engine.LastExitCode); ok {
		if n, err := strconv.Atoi(s); err == nil {
			code = n
		}
	}
	os.Exit(code)
}

func repl(state *engine.EngineState, stack *engine.Stack, cfg config) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := filepath.Join(configDir(), "history")
	if cfg.History {
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			os.MkdirAll(configDir(), 0o755)
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	n := 0
	for {
		line, err := ln.Prompt(prompt(stack, cfg))
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(os.Stderr, "^D")
			return
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			log.Err("%s", err)
			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		n++
		fname := fmt.Sprintf("entry #%d", n)
		shell.EvalSource(state, stack, []byte(line), fname, engine.EmptyData{}, false)
	}
}

// prompt prefixes the configured prompt with the last exit code when it was
// nonzero.
func prompt(stack *engine.Stack, cfg config) string {
	if code, ok := stack.GetEnv(engine.LastExitCode); ok && code != "0" {
		return "[" + code + "] " + cfg.Prompt
	}
	return cfg.Prompt
}
