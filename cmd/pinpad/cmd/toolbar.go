package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/pinpad/internal/ui/theme"
	"github.com/jask/pinpad/internal/ui/toolbar"
)

var (
	previewWidth  int
	previewLayout string
	previewTitle  string
	previewTrail  int
)

var toolbarCmd = &cobra.Command{
	Use:   "toolbar",
	Short: "Preview the toolbar layouts",
	Long: `Print the screen toolbar at a fixed width, once per layout or only for
--layout. Useful for picking ui.toolbar_layout without opening the screen.

Examples:
  pinpad toolbar --width 40
  pinpad toolbar --layout overlay --title "A rather long title" --trailing 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layouts := toolbar.Layouts()
		if previewLayout != "" {
			l, err := toolbar.ParseLayout(previewLayout)
			if err != nil {
				return err
			}
			layouts = []toolbar.Layout{l}
		}
		if previewWidth < 1 {
			return fmt.Errorf("width must be positive")
		}
		items := []toolbar.Item{
			{Glyph: "⌫", Label: "Clear", Key: "clear"},
			{Glyph: "⌨", Label: "Keypad", Key: "keypad"},
			{Glyph: "≡", Label: "History", Key: "history"},
		}
		trailing := items[:max(0, min(previewTrail, len(items)))]

		out := cmd.OutOrStdout()
		ruler := strings.Repeat("·", previewWidth)
		for _, l := range layouts {
			bar := toolbar.Toolbar{
				Title:    previewTitle,
				Leading:  &toolbar.Item{Glyph: "←", Label: "Back", Key: "back"},
				Trailing: trailing,
				Divider:  true,
				Layout:   l,
			}
			fmt.Fprintln(out, theme.Title.Render(l.String()))
			fmt.Fprintln(out, theme.Hint.Render(ruler))
			fmt.Fprintln(out, bar.Render(previewWidth))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	toolbarCmd.Flags().IntVarP(&previewWidth, "width", "w", 48, "toolbar width in cells")
	toolbarCmd.Flags().StringVarP(&previewLayout, "layout", "l", "", "only this layout")
	toolbarCmd.Flags().StringVarP(&previewTitle, "title", "t", "Enter PIN", "toolbar title")
	toolbarCmd.Flags().IntVar(&previewTrail, "trailing", 3, "number of trailing actions (0-3)")
	rootCmd.AddCommand(toolbarCmd)
}
