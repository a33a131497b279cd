// Package main provides the entry point for the Grid Manager application.
// Grid Manager is a GTK4-based desktop client that binds one or more
// distributed-storage gateways into a single window, coordinating folder
// views, gateway messages, and quit confirmation across all of them.
//
// Features:
//   - Per-gateway Folders/History/Storage-time panels behind one selector
//   - Message buffering while the window is hidden, with a tray unread badge
//   - Storage-time (ZKAP) aware control enablement
//   - Secure newscap storage using the system keyring
//   - Command-line interface for preferences and newscaps
//
// Usage:
//
//	grid-manager [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/grid-manager/cli"
	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	listFeatures = flag.Bool("features", false, "List feature toggles")
	getPref      = flag.String("get", "", "Print a preference (section.option)")
	setPref      = flag.String("set", "", "Write a preference (section.option)")
	prefValue    = flag.String("value", "", "Value for --set")
	setNewscap   = flag.String("newscap", "", "Store a newscap for a gateway")
	clearNewscap = flag.String("clear-newscap", "", "Remove a stored newscap")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	// Check if any CLI mode flag is set
	if *listFeatures || *getPref != "" || *setPref != "" ||
		*setNewscap != "" || *clearNewscap != "" {
		runCLI(ctx)
		return
	}

	// Start the GTK application (GUI mode)
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(common.AppID, appVersion)
	exitCode := app.Run(os.Args)

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	// os.Exit skips deferred calls, so flush the log file here
	common.CloseLogger()
	os.Exit(exitCode)
}

// runCLI handles command-line interface operations.
// It accepts a context for graceful shutdown support.
func runCLI(ctx context.Context) {
	cliApp, err := cli.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		common.CloseLogger()
		os.Exit(1)
	}

	// Check if context is already cancelled before proceeding
	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return
	default:
	}

	var cliErr error

	switch {
	case *listFeatures:
		cliErr = cliApp.ListFeatures()
	case *getPref != "":
		cliErr = cliApp.GetPref(*getPref)
	case *setPref != "":
		cliErr = cliApp.SetPref(*setPref, *prefValue)
	case *setNewscap != "":
		cliErr = cliApp.SetNewscap(*setNewscap)
	case *clearNewscap != "":
		cliErr = cliApp.ClearNewscap(*clearNewscap)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		common.CloseLogger()
		os.Exit(1)
	}
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
		// In CLI mode the context cancellation is checked before work
		// starts; in GUI mode GTK handles shutdown via window close
	}()
}
