package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/holocron/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a card catalog file",
	Long: `Validate checks a cards.json file against the catalog schema and reports
duplicate or missing card IDs as errors. Cards whose fields look wrong for
searching are reported as warnings. Without a path the configured catalog
is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CatalogPath()
		if len(args) == 1 {
			path = args[0]
		}
		out := cmd.OutOrStdout()

		v := validator.NewValidator(path)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "✅ Catalog '%s' is valid.\n", path)
		} else {
			fmt.Fprintf(out, "❌ Catalog '%s' has %d validation errors:\n", path, len(results.Errors))
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
