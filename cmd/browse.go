package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/holocron/internal/search"
	"github.com/arcanaland/holocron/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the card catalog interactively",
	Long: `Browse opens an interactive search over the local catalog. Results update
as you type. Press tab to switch between relevance and query mode, the
arrow keys to move through the results, and esc to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for a terminal on both ends
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return fmt.Errorf("browse needs an interactive terminal; use 'holocron search' instead")
		}

		modeFlag, _ := cmd.Flags().GetString("mode")
		if modeFlag == "" {
			modeFlag = cfg.DefaultMode
		}
		mode, err := search.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		cards, err := loadCatalog()
		if err != nil {
			return err
		}

		// The browser reports counts itself once stale results are dropped
		engine := search.NewEngine(mode, search.WithLogger(log))
		observer := search.ObserverFunc(func(n int) {
			log.Debug("results updated", zap.Int("results", n))
		})

		m := tui.New(cards, engine, log, tui.WithObserver(observer))
		return tui.Run(cmd.Context(), m, os.Stdin, os.Stdout)
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringP("mode", "m", "", "initial search mode: relevance or query")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
