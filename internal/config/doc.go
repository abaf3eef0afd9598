// Package config loads richinput settings.
//
// Settings come from three layers, each overriding the one below:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, with optional "@include" files merged beneath it
//  3. RICHINPUT_* environment variables
//
// A typical file:
//
//	[editor]
//	multiline = true
//	maxLength = 500
//	tabSize = 2
//
//	[parsers]
//	markdown = false
//
//	[heuristics]
//	smartSelectionThreshold = 0.5
//
//	[[recognizers]]
//	name = "ticket"
//	pattern = 'JIRA-\d+'
//	priority = 450
//
// Load returns a validated *Config. EngineOptions, TokenizeOptions and
// MapperOptions translate it into the options of the packages that consume
// it. Watch reloads the file when it changes on disk.
package config
