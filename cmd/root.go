// Package cmd implements the CLI command structure for kiki.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kiki-go/internal/command"
	"github.com/nibzard/kiki-go/internal/config"
	"github.com/nibzard/kiki-go/internal/export"
	"github.com/nibzard/kiki-go/internal/logging"
	"github.com/nibzard/kiki-go/internal/session"
	"github.com/nibzard/kiki-go/internal/storage"
	"github.com/nibzard/kiki-go/internal/task"
	"github.com/nibzard/kiki-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the kiki CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kiki", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}
	cfg := cws.Config

	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "tui":
		cfg.UI = config.UITUI
		return runCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand runs an interactive session with the configured front-end.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kiki run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	var journal *logging.Journal
	if cfg.SessionLog {
		journal, err = logging.NewJournal(cfg.LogDir, cfg.DataFile)
		if err != nil {
			logger.Warn("session journal disabled", "err", err)
			journal = nil
		} else {
			defer journal.Close()
			logger.Debug("session journal", "path", journal.LogPath)
		}
	}

	sess := session.New(storage.New(cfg.DataFile), logger, journal)
	if cfg.UI == config.UITUI {
		return ui.RunTUI(ctx, sess)
	}
	return sess.Run(ctx, ui.NewConsole(stdin, stdout))
}

func newLogger(cfg *config.Config) (*log.Logger, error) {
	logger, err := logging.New(stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return logger, nil
}

// loadTasks reads the task file for the non-interactive commands, which
// refuse to work from a corrupted file instead of starting empty.
func loadTasks(cfg *config.Config) (*task.List, error) {
	tasks, err := storage.New(cfg.DataFile).Load()
	if err != nil {
		return nil, fmt.Errorf("loading tasks from %s: %w", cfg.DataFile, err)
	}
	return task.NewList(tasks...), nil
}

// lsCommand prints the task list once.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kiki ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}
	res, err := command.List{}.Execute(command.NewState(tasks, nil))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.Message)
	return nil
}

// exportCommand writes the task list as a structured document.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kiki export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", string(export.FormatJSON), "Output format ("+export.FormatNames()+")")
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}
	doc := export.FromTasks(tasks.All())
	if err := export.Validate(doc); err != nil {
		return err
	}

	if *output == "" {
		return export.Write(stdout, doc, format)
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, doc, format); err != nil {
		f.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %d tasks to %s\n", len(doc.Tasks), *output)
	return nil
}

// doctorCommand reports where configuration came from and whether the task
// file and journal directory are usable.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("kiki doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config
	w := stdout

	fmt.Fprintln(w, "Kiki Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "  (none, using defaults)")
	}
	for _, file := range cws.Files {
		fmt.Fprintf(w, "  %s\n", file)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "  %-15s %s (%s)\n", field, cfg.Value(field), cws.Sources[field])
	}
	if _, err := logging.New(io.Discard, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		fmt.Fprintf(w, "  ❌ Logging: %v\n", err)
		allOK = false
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Data file: %s\n", cfg.DataFile)
	info, err := os.Stat(cfg.DataFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first save)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(w, "  ✅ OK")
		tasks, loadErr := storage.New(cfg.DataFile).Load()
		if loadErr != nil {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", len(tasks))
			if *verbose {
				for i, t := range tasks {
					fmt.Fprintf(w, "    %d. %s\n", i+1, t.Render())
				}
			}
		}
	}
	fmt.Fprintln(w)

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.DataFile)
	if err != nil {
		fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "Log directory: %s\n", logDir)
		journals, err := logging.ListJournals(logDir)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		case len(journals) == 0:
			if cfg.SessionLog {
				fmt.Fprintln(w, "  ⚠️  No journals yet (will be created on run)")
			} else {
				fmt.Fprintln(w, "  ⚠️  Session journal disabled")
			}
		default:
			fmt.Fprintf(w, "  ✅ %d journals, latest %s\n", len(journals), journals[0].RunID)
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Kiki may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// tailCommand tails the latest session journal.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kiki tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.DataFile)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "kiki version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Kiki - a personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kiki [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run           Start an interactive session (default command)")
	fmt.Fprintln(w, "  tui           Start an interactive session in the terminal UI")
	fmt.Fprintln(w, "  ls            Print the task list")
	fmt.Fprintf(w, "  export        Write the task list (%s)\n", export.FormatNames())
	fmt.Fprintln(w, "  doctor        Check config, task file and session journals")
	fmt.Fprintln(w, "  tail          Tail the latest session journal")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Session Commands:")
	fmt.Fprintln(w, "  todo <description>")
	fmt.Fprintln(w, "  deadline <description> /by <yyyy-mm-dd>")
	fmt.Fprintln(w, "  event <description> /from <yyyy-mm-dd> /to <yyyy-mm-dd>")
	fmt.Fprintln(w, "  list | mark <n> | unmark <n> | delete <n>")
	fmt.Fprintln(w, "  on <yyyy-mm-dd> | find <keyword> | bye")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintf(w, "        Output format (%s) (default %q)\n", export.FormatNames(), export.FormatJSON)
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Write to file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
