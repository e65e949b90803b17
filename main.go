package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mrlokans/postomat/internal/cli"
	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// A missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg := config.NewConfig()
	entrypoint.SetupLogging(cfg)

	// If no arguments or "serve" command, run the HTTP gateway
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		slog.Info("starting postomat", slog.String("version", Version), slog.String("commit", Commit))
		if err := entrypoint.Run(cfg, Version); err != nil {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "status":
		cmd = cli.NewStatusCommand(cfg)
	case "open":
		cmd = cli.NewOpenCommand(cfg)
	case "scan":
		cmd = cli.NewScanCommand()
	case "notify":
		cmd = cli.NewNotifyCommand(cfg)
	case "watch":
		cmd = cli.NewWatchCommand(cfg)
	case "version":
		fmt.Printf("postomat %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP gateway (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  status    Show the status of every locker cell\n")
	fmt.Fprintf(os.Stderr, "  open      Open a locker cell\n")
	fmt.Fprintf(os.Stderr, "  scan      List file names under a directory\n")
	fmt.Fprintf(os.Stderr, "  notify    Send a plain-text email notification\n")
	fmt.Fprintf(os.Stderr, "  watch     Poll the locker on a schedule and email changes\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nConfiguration is read from the environment and an optional .env file.\n")
	fmt.Fprintf(os.Stderr, "Use '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
