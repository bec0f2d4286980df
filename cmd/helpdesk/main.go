// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// helpdesk is the terminal client for the PCTE help desk: an AI
// assistant chat, a ticket dashboard, and an analytics view over the
// help-desk backend's REST API.
//
// Subcommands handle account lifecycle (login, register, logout);
// running with no subcommand opens the interactive TUI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/config"
	"github.com/pcte/helpdesk/lib/session"
	"github.com/pcte/helpdesk/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env next to the binary can set HELPDESK_API_URL and friends
	// for lab deployments; absence is fine.
	_ = godotenv.Load()

	var configPath string
	var logOutput string
	var ask string

	flagSet := pflag.NewFlagSet("helpdesk", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config YAML (default: $HELPDESK_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.StringVar(&ask, "ask", "", "open the chat with this message already sent")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works anywhere on the
	// command line.
	for _, arg := range os.Args[1:] {
		if arg == "--version" {
			version.Print("helpdesk")
			return nil
		}
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(logOutput)

	sessions := session.NewStore(cfg.Paths.SessionFile)
	if err := sessions.Load(); err != nil {
		logger.Warn("ignoring unreadable session file", "error", err)
	}
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, sessions)

	args := flagSet.Args()
	if len(args) == 0 {
		return runApp(cfg, client, sessions, logger, ask)
	}

	switch args[0] {
	case "login":
		return runLogin(client, sessions)
	case "register":
		return runRegister(client)
	case "logout":
		return runLogout(sessions)
	case "version":
		fmt.Println(version.Full())
		return nil
	default:
		return fmt.Errorf("unknown command %q (expected login, register, or logout)", args[0])
	}
}

func loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger: JSON records to a file when
// --log-output is set (the TUI owns the terminal), JSON to stderr when
// stderr is piped, human-readable text otherwise.
func newLogger(logOutput string) *slog.Logger {
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		fmt.Fprintf(os.Stderr, "warning: cannot open %s: %v\n", logOutput, err)
	}
	options := &slog.HandlerOptions{Level: slog.LevelWarn}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `PCTE help desk terminal client.

Running with no command opens the interactive TUI: an AI assistant
chat, the ticket dashboard, and the analytics view, switched with Tab.
Sign in first with "helpdesk login".

Usage:
  helpdesk [flags]
  helpdesk login
  helpdesk register
  helpdesk logout
  helpdesk version

Flags:
%s`, flagSet.FlagUsages())
}
