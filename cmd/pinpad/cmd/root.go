package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/pinpad/internal/config"
	"github.com/jask/pinpad/internal/database"
	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/logging"
	"github.com/jask/pinpad/internal/service"
	"github.com/jask/pinpad/internal/tui"
)

var (
	configPath string
	layoutFlag string
	titleFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "pinpad",
	Short: "Terminal PIN entry screen",
	Long: `A PIN entry screen for the terminal: a row of digit boxes under a
toolbar, an optional on-screen keypad, and a local history of attempts.

Examples:
  pinpad                               # Open the PIN screen
  pinpad --layout symmetric            # Center the toolbar title between equal sides
  pinpad history --limit 20            # Show recent attempts
  pinpad set-pin                       # Store a hashed PIN read from stdin`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			os.Setenv("PINPAD_CONFIG", configPath)
		}
	},
	RunE: runScreen,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/pinpad/config.toml)")
	rootCmd.Flags().StringVar(&layoutFlag, "layout", "", "toolbar layout: weighted, symmetric, measured, overlay, start")
	rootCmd.Flags().StringVar(&titleFlag, "title", "", "toolbar title")
}

// env is what every subcommand that touches the history needs.
type env struct {
	cfg      config.Config
	log      *logging.Logger
	db       *sql.DB
	attempts *service.Attempts
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.log.Close()
}

// loadConfig reads and validates the configuration after applying flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if layoutFlag != "" {
		cfg.UI.ToolbarLayout = layoutFlag
	}
	if titleFlag != "" {
		cfg.UI.Title = titleFlag
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level, _ := cfg.Log.SlogLevel()
	logger, err := logging.Open(cfg.Log.Path, level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	return &env{
		cfg: cfg,
		log: logger,
		db:  db,
		attempts: &service.Attempts{
			Repo:     repository.NewAttemptRepo(db),
			Verifier: cfg.PIN.Verifier(),
			Log:      logger.Component("attempts"),
		},
	}, nil
}

func runScreen(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := context.Background()
	app, err := tui.New(ctx, e.cfg, e.attempts, e.log.Component("tui"))
	if err != nil {
		return err
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if e.cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	e.log.Info("screen started", "length", e.cfg.PIN.Length, "layout", e.cfg.UI.ToolbarLayout)
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("run screen: %w", err)
	}
	e.log.Info("screen closed")
	return nil
}
