// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdCompile
	CmdExample
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	URL        string // --url: compile service base URL
	Tier       string // --tier / -c: complexity tier 1-3
	RawView    bool   // --raw: start in the raw HTML view
	ConfigPath string // --config: explicit config file
	Debug      bool   // --debug: write the log to ~/.simpledoc/debug.log
	JSON       bool   // --json: machine-readable output

	// Command-specific
	File       string // compile input; "" or "-" reads stdin
	Output     string // compile -o: output file
	Preview    bool   // compile --preview: print the terminal rendering
	Force      bool   // config init --force
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Name is the unrecognised command for CmdUnknown.
	Name string

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `simpledoc-tui - terminal editor for the SimpleDoc markup language
Version: %s

USAGE:
  simpledoc-tui [flags] [command]

COMMANDS:
  tui                       Interactive editor (default)
  compile [FILE] [options]  Compile FILE (or stdin) and print the HTML
      -o, --output FILE       Write the HTML to FILE instead of stdout
      -c, --tier N            Complexity tier 1-3
      -p, --preview           Print the rendered preview instead of HTML
  example [-c N]            Print the example document for a tier
  config [show|path|init|set KEY VALUE]
                            Inspect or change the configuration
  version                   Show version information
  help                      Show this help

GLOBAL FLAGS:
  --url URL                 Compile service base URL (default http://127.0.0.1:5000)
  --tier N                  Complexity tier 1-3 (default 3)
  --raw                     Start the editor in the HTML view
  --config FILE             Use FILE instead of ~/.simpledoc/config.toml
  --debug                   Log to ~/.simpledoc/debug.log
  --json                    JSON output for compile, config and version

EDITOR KEYS:
  ctrl+j / ctrl+s / F5      Compile (ctrl+enter in most terminals)
  ctrl+o                    Load the tier's example and compile
  ctrl+l                    Clear the editor
  F2 / ctrl+r               Switch between preview and HTML
  alt+1..3 / F3             Select / cycle the complexity tier
  ctrl+x                    Dismiss the latest notification
  F1                        Help and syntax guide
  ctrl+c                    Quit

ENVIRONMENT:
  SIMPLEDOC_URL, SIMPLEDOC_TIER, SIMPLEDOC_VIEW, SIMPLEDOC_TIMEOUT
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("simpledoc-tui version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui", "edit":
		return CmdTUI, parsedArgs

	case "compile", "c":
		parseCompileArgs(&parsedArgs, remaining)
		return CmdCompile, parsedArgs

	case "example", "examples":
		parseExampleArgs(&parsedArgs, remaining)
		return CmdExample, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Name = cmd
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	value := func(i int) (string, int) {
		if i+1 < len(args) {
			return args[i+1], i + 1
		}
		return "", i
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--raw":
			parsedArgs.RawView = true
		case "--debug":
			parsedArgs.Debug = true
		case "--json":
			parsedArgs.JSON = true
		case "--url":
			parsedArgs.URL, i = value(i)
		case "--tier":
			parsedArgs.Tier, i = value(i)
		case "--config":
			parsedArgs.ConfigPath, i = value(i)
		default:
			switch {
			case strings.HasPrefix(arg, "--url="):
				parsedArgs.URL = strings.TrimPrefix(arg, "--url=")
			case strings.HasPrefix(arg, "--tier="):
				parsedArgs.Tier = strings.TrimPrefix(arg, "--tier=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseCompileArgs parses compile arguments. A lone "-" is the stdin
// placeholder, not a flag.
func parseCompileArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-o", "--output":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		case "-c":
			if i+1 < len(remaining) {
				i++
				args.Tier = remaining[i]
			}
		case "-p", "--preview":
			args.Preview = true
		default:
			switch {
			case strings.HasPrefix(arg, "--output="):
				args.Output = strings.TrimPrefix(arg, "--output=")
			case args.File == "":
				args.File = arg
			}
		}
		i++
	}
}

// parseExampleArgs parses example arguments: "example -c 2" or "example 2".
func parseExampleArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	if tier := p.Flag("c"); tier != "" {
		args.Tier = tier
	} else if sub := p.Subcommand(); sub != "" {
		args.Tier = sub
	}
}

// parseConfigArgs parses config arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = JoinPositionalArgs(p, 2)
	args.Force = p.BoolFlag("force") || p.BoolFlag("f")
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		_ = NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
