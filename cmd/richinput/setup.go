package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/richinput/internal/config"
	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/plugin/lua"
	"github.com/dshills/richinput/internal/tokenize"
)

// session is everything built from the configuration.
type session struct {
	cfg         *config.Config
	logger      *logging.Logger
	catalog     *emoji.Catalog
	recognizers []tokenize.Recognizer
	closers     []io.Closer
}

// setup loads configuration and builds the logger, the emoji catalog and
// the custom recognizers. logOut receives logs unless logging.file is set.
func (c *cli) setup(logOut io.Writer) (*session, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	s := &session{cfg: cfg}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		s.closers = append(s.closers, f)
		logOut = f
	}
	s.logger = logging.New(logging.Config{Level: cfg.LogLevel(), Output: logOut, Prefix: "richinput"})

	s.catalog = emoji.NewStandardCatalog()
	if cfg.Emoji.Catalog != "" {
		n, err := s.catalog.LoadFile(cfg.Emoji.Catalog)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("loading emoji catalog: %w", err)
		}
		s.logger.Debug("loaded %d emoji from %s", n, cfg.Emoji.Catalog)
	}

	if s.recognizers, err = cfg.PatternRecognizers(); err != nil {
		s.Close()
		return nil, err
	}
	for _, path := range cfg.Lua.Scripts {
		rec, err := lua.LoadRecognizer(path,
			lua.WithDefaultPriority(cfg.Lua.Priority),
			lua.WithTimeout(cfg.LuaTimeout()),
			lua.WithStateOptions(lua.WithCallStackSize(cfg.Lua.CallStackSize)),
			lua.WithLogger(s.logger),
		)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, rec)
		s.recognizers = append(s.recognizers, rec)
	}
	return s, nil
}

// pipeline builds a tokenizer from the configuration.
func (s *session) pipeline() *tokenize.Pipeline {
	return tokenize.NewPipeline(
		tokenize.WithOptions(s.cfg.TokenizeOptions()),
		tokenize.WithCatalog(s.catalog),
		tokenize.WithRecognizers(s.recognizers...),
		tokenize.WithLogger(s.logger),
	)
}

// Close releases Lua states and the log file.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
	s.closers = nil
}
