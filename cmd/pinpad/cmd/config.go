package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/pinpad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file            %s\n", config.Path())
		fmt.Fprintf(out, "database.path   %s\n", cfg.Database.Path)
		fmt.Fprintf(out, "pin.length      %d\n", cfg.PIN.Length)
		fmt.Fprintf(out, "pin.check       %s\n", pinCheck(cfg.PIN))
		fmt.Fprintf(out, "pin.mask        %q\n", cfg.PIN.Mask)
		fmt.Fprintf(out, "pin.focus_mode  %s\n", cfg.PIN.FocusMode)
		fmt.Fprintf(out, "ui.title        %s\n", cfg.UI.Title)
		fmt.Fprintf(out, "ui.toolbar      %s\n", cfg.UI.ToolbarLayout)
		fmt.Fprintf(out, "ui.divider      %t\n", cfg.UI.Divider)
		fmt.Fprintf(out, "ui.keypad       %t\n", cfg.UI.Keypad)
		fmt.Fprintf(out, "ui.mouse        %t\n", cfg.UI.Mouse)
		fmt.Fprintf(out, "log.path        %s\n", cfg.Log.Path)
		fmt.Fprintf(out, "log.level       %s\n", cfg.Log.Level)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "\ninvalid: %v\n", err)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// pinCheck describes the verifier without printing the PIN.
func pinCheck(p config.PINConfig) string {
	if p.Hash != "" {
		return "bcrypt hash"
	}
	return fmt.Sprintf("plain, %d digits", len(p.Expected))
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
