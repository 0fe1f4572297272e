package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/holocron/internal/catalog"
	"github.com/arcanaland/holocron/internal/config"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local card catalog",
	Long:  `Commands for downloading and inspecting the local card catalog.`,
}

// catalogDownloadCmd represents the catalog download command
var catalogDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the card catalog",
	Long: `Download fetches every configured set file and replaces the local
catalog. The existing catalog is kept if any set fails to download.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		d := catalog.NewDownloader(cfg, log)

		fmt.Fprintf(out, "Downloading %d sets from %s\n", len(d.Sets), d.SourceURL)
		n, err := d.Download(cmd.Context())
		if err != nil {
			return fmt.Errorf("error downloading catalog: %w", err)
		}

		fmt.Fprintf(out, "%s %d cards saved to %s\n", color.GreenString("✓"), n, d.CatalogPath())
		return nil
	},
}

// catalogStatusCmd represents the catalog status command
var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the local catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := cfg.CatalogPath()

		fmt.Fprintln(out, "Catalog:", path)
		if !catalog.Exists(path) {
			fmt.Fprintln(out, color.YellowString("Not downloaded."))
			fmt.Fprintln(out, "Run 'holocron catalog download' to fetch it.")
		} else {
			cards, err := catalog.Load(path)
			if err != nil {
				return err
			}

			if info, err := os.Stat(path); err == nil {
				fmt.Fprintln(out, "Updated:", info.ModTime().Format(time.RFC1123))
			}
			fmt.Fprintf(out, "Cards:   %d\n", len(cards))
			for _, sc := range catalog.CountBySet(cards) {
				fmt.Fprintf(out, "  %-6s %d\n", sc.Set, sc.Count)
			}
		}

		checkOnline, _ := cmd.Flags().GetBool("online")
		if checkOnline {
			client := &http.Client{Timeout: 5 * time.Second}
			if catalog.IsConnected(cmd.Context(), client, cfg.SourceURL) {
				fmt.Fprintln(out, "Source: ", color.GreenString("reachable"))
			} else {
				fmt.Fprintln(out, "Source: ", color.RedString("unreachable"))
			}
		}
		return nil
	},
}

// catalogInitCmd represents the catalog init command
var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the data directory and config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dataPath := cfg.DataPath()

		// Create the data directory if it doesn't exist
		if err := os.MkdirAll(dataPath, 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
		fmt.Fprintln(out, "Data directory initialized at:", dataPath)

		// The config is written on first load
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		fmt.Fprintln(out, "Run 'holocron catalog download' to fetch the cards.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogDownloadCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogInitCmd)

	catalogStatusCmd.Flags().Bool("online", false, "also check that the set source is reachable")
}
