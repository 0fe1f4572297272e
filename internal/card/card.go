package card

import (
	"regexp"
	"strings"
)

// Card types as they appear in the card database.
const (
	TypeUnit    = "unit"
	TypeEvent   = "event"
	TypeUpgrade = "upgrade"
	TypeBase    = "base"
	TypeLeader  = "leader"
	TypeToken   = "token"
)

// Card represents a Star Wars: Unlimited card
type Card struct {
	ID          string   `json:"id" yaml:"id"`                                       // Set code and number (e.g., SOR_005)
	Title       string   `json:"title" yaml:"title"`                                 // Primary name
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`       // Secondary name
	Type        string   `json:"type" yaml:"type"`                                   // Unit, Event, Upgrade, Base, Leader
	Aspects     []string `json:"aspects" yaml:"aspects,omitempty"`                   // Heroism, Villainy, Vigilance, ...
	Traits      []string `json:"traits" yaml:"traits,omitempty"`                     // Rebel, Force, Imperial, ...
	Arenas      []string `json:"arenas" yaml:"arenas,omitempty"`                     // Ground or Space
	Cost        int      `json:"cost" yaml:"cost"`                                   // Resource cost
	Power       *int     `json:"power,omitempty" yaml:"power,omitempty"`             // Units and leaders only
	HP          *int     `json:"hp,omitempty" yaml:"hp,omitempty"`                   // Units, leaders and bases
	Text        string   `json:"text,omitempty" yaml:"text,omitempty"`               // Rules text
	EpicAction  string   `json:"epicAction,omitempty" yaml:"epicAction,omitempty"`   // Leader/base epic action
	Set         string   `json:"set" yaml:"set"`                                     // Expansion code (e.g., SOR)
	Number      string   `json:"number" yaml:"number"`                               // Collector number within the set
	Rarity      string   `json:"rarity" yaml:"rarity"`                               // Common, Uncommon, Rare, Legendary, Special
	Artist      string   `json:"artist,omitempty" yaml:"artist,omitempty"`           // Artwork credit
	Unique      bool     `json:"unique" yaml:"unique"`                               // Only one copy may be in play
	DoubleImage bool     `json:"doubleImage" yaml:"doubleImage,omitempty"`           // Has a printed back side
	FrontArt    string   `json:"frontArt,omitempty" yaml:"frontArt,omitempty"`       // Front image URL
	BackArt     string   `json:"backArt,omitempty" yaml:"backArt,omitempty"`         // Back image URL
}

var leadingArticle = regexp.MustCompile(`^(The|A|An) `)

// DisplayTitle returns the title joined with the subtitle, if any
func (c *Card) DisplayTitle() string {
	if c == nil {
		return ""
	}
	if c.Subtitle == "" {
		return c.Title
	}
	return c.Title + ", " + c.Subtitle
}

// SortTitle returns the title without a leading article
func (c *Card) SortTitle() string {
	if c == nil {
		return ""
	}
	return leadingArticle.ReplaceAllString(c.Title, "")
}

// IsUnit reports whether the card is a unit
func (c *Card) IsUnit() bool { return c.isType(TypeUnit) }

// IsEvent reports whether the card is an event
func (c *Card) IsEvent() bool { return c.isType(TypeEvent) }

// IsUpgrade reports whether the card is an upgrade
func (c *Card) IsUpgrade() bool { return c.isType(TypeUpgrade) }

// IsBase reports whether the card is a base
func (c *Card) IsBase() bool { return c.isType(TypeBase) }

// IsLeader reports whether the card is a leader
func (c *Card) IsLeader() bool { return c.isType(TypeLeader) }

// TwoSided reports whether the card has back art worth showing
func (c *Card) TwoSided() bool {
	return c.IsLeader()
}

func (c *Card) isType(t string) bool {
	return c != nil && strings.EqualFold(c.Type, t)
}

// HasAspect checks for an aspect, ignoring case
func (c *Card) HasAspect(aspect string) bool {
	if c == nil {
		return false
	}
	return containsFold(c.Aspects, aspect)
}

// HasArena checks for an arena, ignoring case
func (c *Card) HasArena(arena string) bool {
	if c == nil {
		return false
	}
	return containsFold(c.Arenas, arena)
}

// HasTrait checks whether any trait contains the given text, ignoring case.
// Partial traits match, so "Reb" finds "Rebel".
func (c *Card) HasTrait(trait string) bool {
	if c == nil {
		return false
	}
	needle := strings.ToLower(trait)
	for _, t := range c.Traits {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func containsFold(values []string, item string) bool {
	for _, v := range values {
		if strings.EqualFold(v, item) {
			return true
		}
	}
	return false
}
