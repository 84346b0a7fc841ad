// Package main is the entry point for the richtext editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/mrdivyansh/lexical/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type cliOptions struct {
	app.Options
	interactive bool
	scripts     []string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	application, err := app.New(cli.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if cli.interactive {
		return runInteractive(application, signals)
	}

	go func() {
		if _, ok := <-signals; ok {
			application.Close()
		}
	}()
	if err := runBatch(application, cli.scripts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runInteractive(application *app.Application, signals <-chan os.Signal) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	go func() {
		if _, ok := <-signals; ok {
			screen.Fini()
		}
	}()

	err = application.RunTerminal(screen)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runBatch executes each script file in turn, or standard input when no
// files are given.
func runBatch(application *app.Application, paths []string) error {
	if len(paths) == 0 {
		return application.RunScript(os.Stdin, os.Stdout)
	}
	for _, path := range paths {
		if err := runFile(application, path, os.Stdout); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func runFile(application *app.Application, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return application.RunScript(f, out)
}

func parseFlags() cliOptions {
	var cli cliOptions
	var configs, plugins listFlag
	var showVersion bool

	flag.Var(&configs, "config", "Configuration file (repeatable, applied in order)")
	flag.Var(&configs, "c", "Configuration file (shorthand)")
	flag.StringVar(&cli.Document, "document", "", "JSON document to open")
	flag.StringVar(&cli.Document, "d", "", "JSON document to open (shorthand)")
	flag.Var(&plugins, "plugin", "Lua plugin script to load (repeatable)")
	flag.BoolVar(&cli.interactive, "interactive", false, "Edit in the terminal instead of running scripts")
	flag.BoolVar(&cli.interactive, "i", false, "Edit in the terminal (shorthand)")
	flag.BoolVar(&cli.Watch, "watch", false, "Reload configuration files when they change")
	flag.StringVar(&cli.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cli.ReadOnly, "readonly", false, "Reject document changes")
	flag.BoolVar(&cli.ReadOnly, "R", false, "Reject document changes (shorthand)")
	flag.StringVar(&cli.MacroFile, "macros", "", "File that keeps macro registers between runs")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richtext - rich-text command engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richtext [options] [scripts...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo 'type hello' | richtext        Run a script from stdin\n")
		fmt.Fprintf(os.Stderr, "  richtext -d doc.json edit.txt       Apply a script to a document\n")
		fmt.Fprintf(os.Stderr, "  richtext -i -plugin smart.lua       Edit interactively with a plugin\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("richtext %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch cli.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.LogLevel)
		os.Exit(1)
	}

	cli.ConfigFiles = configs
	cli.Scripts = plugins
	cli.scripts = flag.Args()
	return cli
}
