package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/holocron/internal/art"
	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/catalog"
	"github.com/arcanaland/holocron/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display information about a specific card with ANSI art",
	Long: `Show displays the details of a card next to ANSI terminal art generated
from its image. Card IDs combine the set code and collector number.

The image is downloaded once and cached in XDG_CACHE_HOME/holocron.

Examples:
  holocron show SOR_010
  holocron show --back SOR_010
  holocron show --no-art shd_200`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noArt, _ := cmd.Flags().GetBool("no-art")
		back, _ := cmd.Flags().GetBool("back")

		cards, err := loadCatalog()
		if err != nil {
			return err
		}

		c, err := catalog.Find(cards, args[0])
		if err != nil {
			return err
		}

		imageURL := c.FrontArt
		if back {
			if !c.TwoSided() || c.BackArt == "" {
				return fmt.Errorf("card %s has no back side", c.ID)
			}
			imageURL = c.BackArt
		}

		var ansiArt string
		if !noArt && imageURL != "" {
			renderer := art.NewRenderer(config.GetCacheDir(), log)
			ansiArt, err = renderer.Render(cmd.Context(), imageURL)
			if err != nil {
				// The details are still worth showing
				log.Warn("card art unavailable", zap.String("card", c.ID), zap.Error(err))
				ansiArt = ""
			}
		}

		displayCard(cmd.OutOrStdout(), c, ansiArt, terminalWidth())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "do not download or display card art")
	showCmd.Flags().Bool("back", false, "show the back art of a leader")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// cardInfoLines returns the labelled detail lines for a card
func cardInfoLines(c *card.Card, width int) []string {
	label := colorize.New(colorize.FgCyan).SprintFunc()
	value := colorize.New(colorize.FgHiWhite).SprintFunc()

	var lines []string
	add := func(name, v string) {
		if v == "" {
			return
		}
		lines = append(lines, label(fmt.Sprintf("%-8s", name+":"))+value(v))
	}

	title := c.Title
	if c.Unique {
		title = "⟡ " + title
	}
	add("Card", title)
	add("Subtitle", c.Subtitle)
	add("ID", c.ID)
	add("Type", c.Type)

	stats := []string{"cost " + strconv.Itoa(c.Cost)}
	if c.Power != nil {
		stats = append(stats, "power "+strconv.Itoa(*c.Power))
	}
	if c.HP != nil {
		stats = append(stats, "hp "+strconv.Itoa(*c.HP))
	}
	add("Stats", strings.Join(stats, " · "))
	add("Aspects", strings.Join(c.Aspects, ", "))
	add("Traits", strings.Join(c.Traits, ", "))
	add("Arenas", strings.Join(c.Arenas, ", "))
	add("Set", strings.TrimSpace(c.Set+" #"+c.Number))
	add("Rarity", c.Rarity)
	add("Artist", c.Artist)

	if c.Text != "" {
		lines = append(lines, "", label("Text:"))
		lines = append(lines, wrapText(c.Text, width)...)
	}
	if c.EpicAction != "" {
		lines = append(lines, "", label("Epic Action:"))
		lines = append(lines, wrapText(c.EpicAction, width)...)
	}
	return lines
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	currentLine := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}
	return append(result, currentLine)
}

// displayCard prints the art on the left and the card details on the right
func displayCard(w io.Writer, c *card.Card, ansiArt string, width int) {
	var ansiLines []string
	maxAnsiWidth := 0
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
		for _, line := range ansiLines {
			if n := utf8.RuneCountInString(art.StripAnsi(line)); n > maxAnsiWidth {
				maxAnsiWidth = n
			}
		}
	}

	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}
	infoLines := cardInfoLines(c, infoWidth)

	fmt.Fprintln(w)
	for i := 0; i < max(len(ansiLines), len(infoLines)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(ansiLines) {
			fmt.Fprint(w, ansiLines[i])
			visible := utf8.RuneCountInString(art.StripAnsi(ansiLines[i]))
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol-visible))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(w, infoLines[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
