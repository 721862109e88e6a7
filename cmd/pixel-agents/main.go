package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixel-agents/dashboard/internal/config"
	"github.com/pixel-agents/dashboard/internal/engine"
	"github.com/pixel-agents/dashboard/internal/lockfile"
	"github.com/pixel-agents/dashboard/internal/terminal"
	"github.com/pixel-agents/dashboard/internal/tui"
	"github.com/pixel-agents/dashboard/internal/ws"
)

func main() {
	attach := flag.Bool("attach", false, "Run in attach mode (renders the dashboard)")
	flag.Bool("session-hook", false, "Invoked from an assistant session hook")
	configPath := flag.String("config", "", "Path to config file")
	serve := flag.Bool("serve", false, "Serve snapshots over WebSocket")
	addr := flag.String("addr", "", "Override snapshot server address (host:port)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serve {
		cfg.Server.Enabled = true
	}

	if *attach {
		if err := runDashboard(cfg, *addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := launchSplit(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// launchSplit is the default mode: if no dashboard is already running,
// open a split pane in the hosting terminal and start one there. When a
// live instance holds the PID file this is a silent no-op, so session
// hooks can invoke the binary on every session start.
func launchSplit(cfg *config.Config) error {
	if lockfile.Held(cfg.PIDFile) {
		return nil
	}

	binary, err := os.Executable()
	if err != nil {
		binary = "pixel-agents"
	}

	cmd, ok := terminal.SplitCommandFor(terminal.Detect(), binary)
	if !ok {
		cmd = terminal.FallbackCommand(binary)
	}

	if err := exec.Command(cmd.Program, cmd.Args...).Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", cmd.Program, err)
	}
	return nil
}

// runDashboard is attach mode: claim the PID file, start the optional
// snapshot server, and run the Bubble Tea program until quit.
func runDashboard(cfg *config.Config, addrOverride string) error {
	lock, err := lockfile.Acquire(cfg.PIDFile)
	if err != nil {
		return fmt.Errorf("acquire pid file: %w", err)
	}
	defer lock.Release()

	// The terminal is in raw mode while the program runs, so logs go to
	// a file instead of stderr.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "pixel-agents")
		if err == nil {
			defer f.Close()
		}
	}

	var pub tui.Publisher
	if cfg.Server.Enabled {
		addr := cfg.Addr()
		if addrOverride != "" {
			addr = addrOverride
		}
		broadcaster := ws.NewBroadcaster(cfg.Server.BroadcastThrottle)
		server := ws.NewServer(broadcaster)
		mux := http.NewServeMux()
		server.SetupRoutes(mux)
		go func() {
			if err := ws.ListenAndServe(addr, mux); err != nil {
				log.Printf("Snapshot server error: %v", err)
			}
		}()
		pub = broadcaster
	}

	eng := engine.New(cfg)
	p := tea.NewProgram(tui.New(eng, cfg, pub), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
