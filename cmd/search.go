package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the card catalog",
	Long: `Search finds cards in the local catalog.

In relevance mode (the default) the query is free text. Cards are ranked by
where the words match: titles first, then subtitles, traits and aspects,
set, rules text, and finally rarity and artist.

In query mode the query is a list of clauses joined with "and" / "or":
  field op value
where op is one of = != < <= > >= contains (c) matches (m).

Examples:
  holocron search vader
  holocron search --scores luke skywalker
  holocron search --sort cost imperial
  holocron search --mode query "type = unit and cost <= 3 and aspect = heroism"
  holocron search --mode query --format json "trait c jedi or trait c sith"`,
	RunE: runSearch,
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("mode", "m", "", "search mode: relevance or query (default from config)")
	searchCmd.Flags().IntP("limit", "n", -1, "maximum number of results, 0 for all (default from config)")
	searchCmd.Flags().StringP("format", "f", "table", "output format: table, json or yaml")
	searchCmd.Flags().Bool("scores", false, "include relevance scores (relevance mode only)")
	searchCmd.Flags().String("sort", "", "reorder results by title or cost")
}

func runSearch(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")
	withScores, _ := cmd.Flags().GetBool("scores")
	sortBy, _ := cmd.Flags().GetString("sort")

	if modeFlag == "" {
		modeFlag = cfg.DefaultMode
	}
	mode, err := search.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	if limit < 0 {
		limit = cfg.ResultLimit
	}

	switch sortBy {
	case "", "title", "cost":
	default:
		return fmt.Errorf("unknown sort order: %s", sortBy)
	}

	format = strings.ToLower(format)
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	cards, err := loadCatalog()
	if err != nil {
		return err
	}

	rawQuery := strings.Join(args, " ")
	observer := search.ObserverFunc(func(n int) {
		log.Info("search complete",
			zap.String("query", rawQuery),
			zap.Stringer("mode", mode),
			zap.Int("results", n))
	})
	opts := []search.Option{search.WithObserver(observer), search.WithLogger(log)}

	// Scores only exist for relevance ranking
	if withScores && mode == search.ModeStructured {
		log.Warn("--scores ignored in query mode")
		withScores = false
	}

	var results []search.Result
	if withScores {
		results = search.NewSearcher(opts...).Rank(cards, rawQuery)
		observer.ResultCount(len(results))
	} else {
		found, _ := search.NewEngine(mode, opts...).Search(cards, rawQuery)
		results = make([]search.Result, len(found))
		for i, c := range found {
			results[i] = search.Result{Card: c}
		}
	}

	sortResults(results, sortBy)

	total := len(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, results, withScores)
	case "yaml":
		return writeYAML(out, results, withScores)
	}

	writeTable(out, results, withScores)
	fmt.Fprintln(out)
	if total > len(results) {
		fmt.Fprintf(out, "%d results found (showing %d)\n", total, len(results))
	} else {
		fmt.Fprintf(out, "%d results found\n", total)
	}
	return nil
}

// sortResults reorders results; ties keep their search order
func sortResults(results []search.Result, sortBy string) {
	switch sortBy {
	case "title":
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Card.SortTitle()) < strings.ToLower(results[j].Card.SortTitle())
		})
	case "cost":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Card.Cost < results[j].Card.Cost
		})
	}
}

// resultValue returns what gets serialized for results
func resultValue(results []search.Result, withScores bool) interface{} {
	if withScores {
		return results
	}
	cards := make([]*card.Card, len(results))
	for i, r := range results {
		cards[i] = r.Card
	}
	return cards
}

func writeJSON(w io.Writer, results []search.Result, withScores bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resultValue(results, withScores))
}

func writeYAML(w io.Writer, results []search.Result, withScores bool) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(resultValue(results, withScores)); err != nil {
		return err
	}
	return encoder.Close()
}

// writeTable prints one line per card
func writeTable(w io.Writer, results []search.Result, withScores bool) {
	idColor := color.New(color.FgCyan)
	titleColor := color.New(color.FgHiWhite, color.Bold)
	dimColor := color.New(color.FgHiBlack)
	scoreColor := color.New(color.FgYellow)

	for _, r := range results {
		c := r.Card
		if withScores {
			scoreColor.Fprintf(w, "%6d  ", r.Score)
		}
		idColor.Fprintf(w, "%-9s ", c.ID)
		titleColor.Fprint(w, c.Title)
		if c.Subtitle != "" {
			fmt.Fprintf(w, ", %s", c.Subtitle)
		}
		dimColor.Fprintf(w, "  %s · cost %d", c.Type, c.Cost)
		if len(c.Aspects) > 0 {
			dimColor.Fprintf(w, " · %s", strings.Join(c.Aspects, "/"))
		}
		fmt.Fprintln(w)
	}
}
