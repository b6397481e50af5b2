package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/kiosk"
	"pos-kiosk-demo/internal/poller"
	"pos-kiosk-demo/internal/ui"
)

func main() {
	fs := ff.NewFlagSet("kiosk")
	var (
		configPath   = fs.StringLong("config", "./config/config.yaml", "Path to the yaml configuration file")
		serverURL    = fs.StringLong("server", "", "Handoff server base URL (overrides kiosk.server_url)")
		pollInterval = fs.DurationLong("poll-interval", 0, "Status poll interval (overrides kiosk.poll_interval_ms)")
		sessionID    = fs.StringLong("session", "", "Session ID to use instead of a random one")
		logFile      = fs.StringLong("log-file", "kiosk.log", "File the kiosk logs to while the UI is running")
		offline      = fs.BoolLong("offline", "Run without a handoff server")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("KIOSK"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Kiosk.ServerURL = *serverURL
	}
	if *pollInterval > 0 {
		cfg.Kiosk.PollInterval = *pollInterval
	}

	f, err := tea.LogToFile(*logFile, "kiosk ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	id := *sessionID
	if id == "" {
		id = kiosk.NewSessionID()
	}
	log.Printf("session %s, server %s", id, cfg.Kiosk.ServerURL)

	machine := kiosk.NewMachine(cfg)
	var (
		orch *kiosk.Orchestrator
		dev  ui.DevClient
	)
	if *offline {
		orch = kiosk.NewOrchestrator(machine, kiosk.NewState(id), nil, nil)
	} else {
		client := poller.NewClient(cfg.Kiosk.ServerURL, 5*time.Second)
		orch = kiosk.NewOrchestrator(machine, kiosk.NewState(id), poller.New(client, cfg.Kiosk.PollInterval), client)
		dev = client
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := orch.Run(ctx); err != nil {
			log.Printf("orchestrator stopped: %v", err)
		}
	}()

	p := tea.NewProgram(ui.New(orch, machine, dev, ui.TimingFromConfig(cfg.Kiosk)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running kiosk: %v\n", err)
		os.Exit(1)
	}
}
