package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/gen"
	"github.com/coldestconcept/beatgenius/internal/mcp"
	"github.com/coldestconcept/beatgenius/internal/session"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"load": true, "rack": true, "generate": true,
	"signin": true, "signout": true,
	"vault": true, "folder": true, "preset": true, "history": true,
	"rig": true, "share": true, "open": true, "station": true,
	"clear": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___          _    ___           _
  | _ ) ___ __ _| |_ / __|___ _ _  (_)_  _ ___
  | _ \/ -_) _' |  _| (_ / -_) ' \ | | || (_-<
  |___/\___\__,_|\__|\___\___|_||_||_|\_,_/__/

  Plugin rack analyzer and beat recipe vault

  Usage: beatgenius <command> [options]
         beatgenius --help

  MCP server mode requires piped input.`)
}

// newGenClient builds the Gemini client when an API key is present.
// Without a key the CLI still works; generation commands report the
// failure when invoked.
func newGenClient(cfg *config.Config) gen.Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}
	client, err := gen.NewGeminiClient(context.Background(), apiKey, cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return client
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".beatgenius")

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	store, err := session.Load(database, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load session: %v\n", err)
		os.Exit(1)
	}

	client := newGenClient(cfg)
	exportDir := filepath.Join(baseDir, "exports")

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(store, cfg, client, exportDir)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'beatgenius --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(store, cfg, client, exportDir, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
