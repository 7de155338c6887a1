package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/config"
	"tempo/internal/server"
	"tempo/internal/service"
	"tempo/internal/store"
	"tempo/internal/store/memory"
	"tempo/internal/store/sqlite"
	"tempo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	runTUI := flag.Bool("tui", false, "open the terminal UI instead of serving MCP")
	dbPath := flag.String("db", "", "sqlite database path (\"default\" for the standard data dir; omit for in-memory)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tempo %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	st, err := openStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	svc, err := service.New(st, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing service: %v\n", err)
		os.Exit(1)
	}

	server.Version = version

	if *runTUI {
		app := ui.NewApp(svc)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := server.ServeStdio(server.New(svc)); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(path string) (store.Store, error) {
	switch path {
	case "":
		return memory.New(), nil
	case "default":
		return sqlite.New()
	default:
		return sqlite.Open(path)
	}
}
