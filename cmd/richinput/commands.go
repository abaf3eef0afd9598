package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/pretty"

	"github.com/dshills/richinput/internal/config"
	"github.com/dshills/richinput/internal/engine"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/terminal"
	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

// input returns the joined arguments, or all of stdin when there are none.
func (c *cli) input(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func (c *cli) stdoutIsTTY() bool {
	f, ok := c.stdout.(*os.File)
	return ok && c.isTTY != nil && c.isTTY(f)
}

func (c *cli) parse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	indent := fs.Bool("pretty", false, "Indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	s, err := c.setup(c.stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	text, err := c.input(fs.Args())
	if err != nil {
		return err
	}
	out, err := token.MarshalSet(s.pipeline().Tokenize(text))
	if err != nil {
		return err
	}
	if *indent {
		out = pretty.Pretty(out)
		if c.stdoutIsTTY() {
			out = pretty.Color(out, nil)
		}
	} else {
		out = append(out, '\n')
	}
	_, err = c.stdout.Write(out)
	return err
}

func (c *cli) pills(args []string) error {
	fs := flag.NewFlagSet("pills", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	create := fs.String("create", "", "URL to wrap in a pill marker")
	behavior := fs.String("behavior", "", "Pill behavior: link, embed or modal (default from the domain table)")
	id := fs.String("id", "", "Custom pill id")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	domains := tokenize.DefaultDomains()
	if *create != "" {
		b := domains.DefaultBehavior(*create)
		if *behavior != "" {
			var ok bool
			if b, ok = token.ParseBehavior(*behavior); !ok {
				return fmt.Errorf("invalid behavior %q (must be link, embed or modal)", *behavior)
			}
		}
		_, err := fmt.Fprintln(c.stdout, tokenize.CreatePill(tokenize.NormalizeURL(*create), b, *id))
		return err
	}

	text, err := c.input(fs.Args())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, tokenize.ConvertURLsToPills(text, domains))
	return err
}

func (c *cli) emoji(args []string) error {
	fs := flag.NewFlagSet("emoji", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	limit := fs.Int("limit", 8, "Maximum number of suggestions")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(c.stderr, "usage: richinput emoji [-limit N] <query>")
		return errUsage
	}

	s, err := c.setup(c.stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	query := strings.Trim(fs.Arg(0), ":")
	for _, sg := range s.catalog.Suggest(query, *limit) {
		glyph := sg.Emoji.Unicode
		if glyph == "" {
			glyph = "[" + sg.Emoji.ImageURL + "]"
		}
		if _, err := fmt.Fprintf(c.stdout, "%s\t:%s:\t%s\n", glyph, sg.Key, sg.Emoji.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	single := fs.Bool("single-line", false, "Fold line breaks into spaces")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if in, ok := c.stdin.(*os.File); !ok || c.isTTY == nil || !c.isTTY(in) {
		return fmt.Errorf("edit needs an interactive terminal")
	}

	s, err := c.setup(io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := s.cfg.EngineOptions()
	if *single {
		opts.Multiline = false
	}
	eng := engine.New(
		engine.WithOptions(opts),
		engine.WithContent(strings.Join(fs.Args(), " ")),
		engine.WithPipeline(s.pipeline()),
		engine.WithLogger(s.logger),
	)

	palette, err := terminal.NewPalette(s.cfg.Terminal.Palette)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	host := terminal.New(screen, eng,
		terminal.WithPalette(palette),
		terminal.WithTabWidth(s.cfg.Terminal.TabWidth),
		terminal.WithMapperOptions(s.cfg.MapperOptions()...),
		terminal.WithLogger(s.logger),
	)

	if s.cfg.Watch.Enabled && c.configPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		r := &reloader{engine: eng, logger: s.logger, names: names(s.cfg)}
		go func() {
			if err := config.Watch(watchCtx, c.configPath, r.apply); err != nil {
				s.logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	if err := host.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, eng.Text())
	return err
}

// reloader swaps the pattern recognizers of a running engine when the
// configuration file changes. Other settings apply on the next start.
type reloader struct {
	mu     sync.Mutex
	engine *engine.Engine
	logger *logging.Logger
	names  []string
}

func (r *reloader) apply(cfg *config.Config, err error) {
	if err != nil {
		r.logger.Warn("config reload failed: %v", err)
		return
	}
	recs, err := cfg.PatternRecognizers()
	if err != nil {
		r.logger.Warn("config reload failed: %v", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.names {
		if err := r.engine.RemoveParser(name); err != nil {
			r.logger.Debug("remove %s: %v", name, err)
		}
	}
	r.names = r.names[:0]
	for _, rec := range recs {
		if err := r.engine.AddParser(rec); err != nil {
			r.logger.Warn("add %s: %v", rec.Name(), err)
			continue
		}
		r.names = append(r.names, rec.Name())
	}
	r.logger.Info("reloaded %d pattern recognizers", len(r.names))
}

func names(cfg *config.Config) []string {
	out := make([]string, len(cfg.Recognizers))
	for i, rc := range cfg.Recognizers {
		out[i] = rc.Name
	}
	return out
}
