// Package main is the richinput command: a token inspector and an
// interactive terminal editor for rich text input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage means the usage message has already been printed.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTTY:  func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) },
	}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cli holds the process streams so commands can be tested.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	isTTY  func(*os.File) bool

	configPath string
	logLevel   string
}

func (c *cli) usage() {
	fmt.Fprintf(c.stderr, "richinput - rich text input engine\n\n")
	fmt.Fprintf(c.stderr, "Usage: richinput [options] <command> [args]\n\n")
	fmt.Fprintf(c.stderr, "Commands:\n")
	fmt.Fprintf(c.stderr, "  parse [-pretty] [text]        Tokenize text (or stdin) and print token JSON\n")
	fmt.Fprintf(c.stderr, "  pills [text]                  Rewrite bare URLs as pill markers\n")
	fmt.Fprintf(c.stderr, "  pills -create URL [-behavior B] [-id ID]\n")
	fmt.Fprintf(c.stderr, "                                Print a single pill marker\n")
	fmt.Fprintf(c.stderr, "  emoji [-limit N] <query>      Suggest emoji shortcodes\n")
	fmt.Fprintf(c.stderr, "  edit [-single-line] [text]    Edit interactively, print the result\n")
	fmt.Fprintf(c.stderr, "  version                       Show version information\n\n")
	fmt.Fprintf(c.stderr, "Options:\n")
	fmt.Fprintf(c.stderr, "  -c, -config PATH     Configuration file (TOML)\n")
	fmt.Fprintf(c.stderr, "  -log-level LEVEL     Override logging.level (debug, info, warn, error)\n")
}

func (c *cli) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("richinput", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&c.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&c.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Usage = c.usage
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		c.usage()
		return errUsage
	}

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "parse":
		return c.parse(cmdArgs)
	case "pills":
		return c.pills(cmdArgs)
	case "emoji":
		return c.emoji(cmdArgs)
	case "edit":
		return c.edit(ctx, cmdArgs)
	case "version":
		fmt.Fprintf(c.stdout, "richinput %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return nil
	case "help":
		c.usage()
		return nil
	default:
		fmt.Fprintf(c.stderr, "unknown command %q\n\n", cmd)
		c.usage()
		return errUsage
	}
}
