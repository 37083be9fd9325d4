package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/commentpulse/internal/config"
	"github.com/csheth/commentpulse/internal/sentiment"
	"github.com/csheth/commentpulse/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/commentpulse/config.yaml)")
	endpoint := flag.String("endpoint", "", "analysis service base URL (eg. http://127.0.0.1:8000)")
	timeout := flag.Duration("timeout", 0, "deadline for a single analysis request")
	exportDir := flag.String("export-dir", "", "directory that Ctrl+E writes charts into")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logPath := flag.String("log", "", "append component logs to this file")
	debug := flag.Bool("debug", false, "log every state transition")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}

	// Only flags given on the command line override the loaded values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Service.Endpoint = *endpoint
		case "timeout":
			cfg.Service.Timeout = *timeout
		case "export-dir":
			cfg.Export.Dir = *exportDir
		case "no-alt-screen":
			cfg.UI.AltScreen = !*noAltScreen
		case "log":
			cfg.Log = *logPath
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid flags:", err)
		os.Exit(1)
	}

	if cfg.Log != "" {
		logFile, err := tea.LogToFile(cfg.Log, "commentpulse")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	client := sentiment.NewClient(cfg.Service.Endpoint, nil)
	log.Printf("[main] endpoint=%s timeout=%s export=%s", client.Endpoint(), cfg.Service.Timeout, cfg.Export.Dir)

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Analyzer:  client,
			Health:    client,
			Endpoint:  client.Endpoint(),
			Timeout:   cfg.Service.Timeout,
			ExportDir: cfg.Export.Dir,
			Verbose:   cfg.Debug,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
