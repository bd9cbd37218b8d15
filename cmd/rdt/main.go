// Package main is the entry point for the Reseller Dashboard TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/config"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/tabs/callhistory"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/tabs/domains"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/tabs/provision"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/tabs/resellers"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize the service manager
	// This wires the API client, token provider, credential store, and
	// the listing, aggregation, call history, and provisioning services
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state and services
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		resellers.New(state),               // Tab 0: Resellers - reseller listing and filtering
		domains.New(state),                 // Tab 1: Domains - per-domain aggregated counts
		callhistory.New(state, svcManager), // Tab 2: Call History - monthly call volume
		provision.New(state),               // Tab 3: Provision - credential provisioning form
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Reseller Dashboard TUI - NetSapiens reseller and domain monitor

Usage:
  rdt [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Resellers, Domains, Call History, Provision)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  /               Filter resellers
  t               Toggle call history range (3/6/12 months)
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  NS_API_BASE_URL              NetSapiens API base URL (required)
  NS_API_TOKEN                 Bearer token for API requests
  NS_API_TOKEN_FILE            Path to a token file, reloaded on change
  DATABASE_PATH                SQLite credential database path
  REQUEST_TIMEOUT              Per-request timeout (default: 30s)
  MAX_CONCURRENT_AGGREGATIONS  Concurrent domain fetches (default: 5)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/reseller-dashboard/.env
  - ~/.reseller-dashboard/.env

For more information, visit: https://github.com/yabbit-au/reseller-dashboard-tui`)
}
