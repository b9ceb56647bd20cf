package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/testdata"
	"github.com/jask/pinpad/internal/ui/theme"
)

var (
	historyLimit int
	historyJSON  bool
	clearYes     bool
	seedCount    int
	seedValue    int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent PIN attempts",
	Long: `Show the recorded PIN attempts, newest first. Attempts store the
outcome, the number of digits entered and how they were entered, never the
digits themselves.

Examples:
  pinpad history                 # Last 20 attempts
  pinpad history --limit 0       # Every attempt
  pinpad history --json          # Machine-readable output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := context.Background()
		list, err := e.attempts.Recent(ctx, historyLimit)
		if err != nil {
			return err
		}
		sum, err := e.attempts.Summary(ctx)
		if err != nil {
			return err
		}
		if historyJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(historyReport{Attempts: list, Summary: sum})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(list, sum))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded attempt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear history without --yes")
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.attempts.Clear(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d attempts\n", n)
		return nil
	},
}

var historySeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the history with sample attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount < 0 {
			return fmt.Errorf("--count must not be negative, got %d", seedCount)
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		seed := seedValue
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		list, err := testdata.Seed(context.Background(), repository.NewAttemptRepo(e.db), seedCount, e.cfg.PIN.Length, seed, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample attempts\n", len(list))
		return nil
	},
}

type historyReport struct {
	Attempts []repository.Attempt `json:"attempts"`
	Summary  repository.Summary   `json:"summary"`
}

func renderHistory(list []repository.Attempt, sum repository.Summary) string {
	if len(list) == 0 {
		return theme.Hint.Render("No attempts yet")
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			a.Outcome,
			strconv.Itoa(a.Digits),
			a.Source,
			shortID(a.ID),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("WHEN", "OUTCOME", "DIGITS", "SOURCE", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 && row >= 0 && row < len(list) {
				return cell.Foreground(outcomeColor(list[row].Outcome))
			}
			return cell
		})

	totals := fmt.Sprintf("%d total, %d accepted, %d incorrect, %d incomplete, %d failed",
		sum.Total,
		sum.ByKind[repository.OutcomeAccepted],
		sum.ByKind[repository.OutcomeIncorrect],
		sum.ByKind[repository.OutcomeIncomplete],
		sum.ByKind[repository.OutcomeFailed])
	return t.Render() + "\n" + theme.Hint.Render(totals)
}

func outcomeColor(outcome string) lipgloss.Color {
	switch outcome {
	case repository.OutcomeAccepted:
		return theme.Success
	case repository.OutcomeFailed:
		return theme.Error
	default:
		return theme.Warning
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of attempts to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "confirm deletion")
	historySeedCmd.Flags().IntVar(&seedCount, "count", 20, "number of attempts to add")
	historySeedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (default: time based)")
	historyCmd.AddCommand(historyClearCmd, historySeedCmd)
	rootCmd.AddCommand(historyCmd)
}
