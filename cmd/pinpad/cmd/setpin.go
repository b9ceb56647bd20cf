package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/pinpad/internal/config"
	"github.com/jask/pinpad/internal/pin"
)

var newPIN string

var setPinCmd = &cobra.Command{
	Use:   "set-pin",
	Short: "Store a new PIN as a bcrypt hash",
	Long: `Hash a new PIN and write it to the config file. The PIN is read from
--pin or, when the flag is absent, from the first line of stdin. The plain
pin.expected setting is cleared and pin.length follows the new PIN.

Examples:
  echo 482913 | pinpad set-pin
  pinpad set-pin --pin 4829`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		value := newPIN
		if value == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read pin from stdin: %w", err)
			}
			value = line
		}
		value = strings.TrimSpace(value)
		if value == "" || len(pin.Digits(value)) != len(value) {
			return fmt.Errorf("pin must be digits only")
		}
		if len(value) > pin.MaxLength {
			return fmt.Errorf("pin longer than %d digits", pin.MaxLength)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		hash, err := pin.HashPIN(value)
		if err != nil {
			return err
		}
		cfg.PIN.Hash = hash
		cfg.PIN.Expected = ""
		cfg.PIN.Length = len(value)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored a %d-digit PIN in %s\n", len(value), config.Path())
		return nil
	},
}

func init() {
	setPinCmd.Flags().StringVar(&newPIN, "pin", "", "new PIN (read from stdin when empty)")
	rootCmd.AddCommand(setPinCmd)
}
