package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tactus/baton/config"
	"github.com/tactus/baton/ensemble"
	"github.com/tactus/baton/logger"
	"github.com/tactus/baton/server"
	"github.com/tactus/baton/store"
)

// ServeCmd starts the Baton compile server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the compile server for live editor sessions",
	Long: `Launch the Baton compile server. The Tactus editor connects over
WebSocket and receives compiled Ensemble source for every change;
plain HTTP endpoints serve one-shot compiles, the kind catalog, and
server status.

The port comes from configuration (server.port) unless --port is
given. If the port is taken, the next free one is used.`,
	RunE: runServe,
}

var (
	servePort   int
	serveDBPath string
	serveNoSave bool
)

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	ServeCmd.Flags().StringVar(&serveDBPath, "db-path", "", "Custom program library path (overrides config)")
	ServeCmd.Flags().BoolVar(&serveNoSave, "no-save", false, "Run without a program library (compile only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = 1
	}
	if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	port := servePort
	if port == 0 {
		port = cfg.GetServerPort()
	}

	// Open the program library unless this is a compile-only server
	var library *store.Store
	dbPath := serveDBPath
	if !serveNoSave {
		if dbPath == "" {
			dbPath, err = config.GetDatabasePath()
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}
		}
		library, err = store.Open(dbPath, logger.Logger)
		if err != nil {
			return fmt.Errorf("failed to open program library: %w", err)
		}
		defer library.Close()
	} else {
		dbPath = ""
	}

	compiler := ensemble.NewCompiler(nil, ensemble.Options{Indent: cfg.GetIndent()})
	srv := server.NewServer(compiler, library, cfg, logger.Logger)

	// Reload config on file changes so origin and rate settings follow edits
	if watcher := startConfigWatcher(); watcher != nil {
		defer watcher.Stop()
	}

	printStartupBanner(verbosity, port, dbPath)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed to start: %w", err)
	case <-sigChan:
		// First Ctrl+C - graceful shutdown
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return fmt.Errorf("shutdown error: %w", err)
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			// Second Ctrl+C - force immediate exit
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}

// startConfigWatcher watches the user config file when it exists. Reloads are
// logged; new connections pick up the fresh origin and rate limits.
func startConfigWatcher() *config.ConfigWatcher {
	configPath := config.DefaultUserConfigPath()
	if _, err := os.Stat(configPath); err != nil {
		return nil
	}

	watcher, err := config.NewConfigWatcher(configPath)
	if err != nil {
		logger.Warnw("config watch unavailable",
			logger.FieldFile, configPath,
			logger.FieldError, err)
		return nil
	}
	watcher.OnReload(func(cfg *config.Config) error {
		logger.Infow("configuration reloaded",
			logger.FieldFile, configPath)
		return nil
	})
	watcher.Start()
	config.SetGlobalWatcher(watcher)
	return watcher
}
