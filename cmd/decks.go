package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// decksCmd lists the deck-building sites from the config
var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List deck-building sites",
	Long: `Decks lists the deck-building sites configured under [[deckbuilders]]
in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(cfg.DeckBuilders) == 0 {
			fmt.Fprintln(out, "No deck-building sites configured.")
			return nil
		}

		for _, d := range cfg.DeckBuilders {
			fmt.Fprintf(out, "  %s %s\n", color.HiWhiteString("%-18s", d.Name), color.CyanString("%s", d.URL))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(decksCmd)
}
