package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/config"
)

const (
	// userAgent identifies holocron to the set file host
	userAgent = "holocron/1.0"
	// defaultConcurrency bounds parallel set downloads
	defaultConcurrency = 4
	// lockRetryDelay is how often a held data directory lock is retried
	lockRetryDelay = 200 * time.Millisecond
)

// Downloader fetches the set files and writes the merged catalog.
type Downloader struct {
	Client      *http.Client
	SourceURL   string
	Sets        []string
	DataDir     string
	Concurrency int
	Logger      *zap.Logger
}

// NewDownloader creates a Downloader from the configuration.
func NewDownloader(cfg *config.Config, logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		Client:      &http.Client{Timeout: 60 * time.Second},
		SourceURL:   cfg.SourceURL,
		Sets:        cfg.Sets,
		DataDir:     cfg.DataPath(),
		Concurrency: defaultConcurrency,
		Logger:      logger,
	}
}

// CatalogPath returns where Download writes cards.json.
func (d *Downloader) CatalogPath() string {
	return filepath.Join(d.DataDir, "cards.json")
}

// Download fetches every set, merges them in configured order and replaces
// cards.json. It returns the number of cards written. Nothing is written
// unless every set downloads.
func (d *Downloader) Download(ctx context.Context) (int, error) {
	if len(d.Sets) == 0 {
		return 0, fmt.Errorf("no sets configured")
	}

	// Ensure data directory exists
	if err := os.MkdirAll(d.DataDir, 0755); err != nil {
		return 0, fmt.Errorf("error creating data directory: %w", err)
	}

	perSet := make([][]*card.Card, len(d.Sets))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	g.SetLimit(concurrency)

	for i, set := range d.Sets {
		i, set := i, set
		g.Go(func() error {
			cards, err := d.fetchSet(gctx, set)
			if err != nil {
				return err
			}
			perSet[i] = cards
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var all []*card.Card
	for _, cards := range perSet {
		all = append(all, cards...)
	}

	if err := d.write(ctx, all); err != nil {
		return 0, err
	}

	d.Logger.Info("catalog downloaded",
		zap.Int("cards", len(all)),
		zap.Int("sets", len(d.Sets)),
		zap.String("path", d.CatalogPath()))

	return len(all), nil
}

// fetchSet downloads and converts one set file.
func (d *Downloader) fetchSet(ctx context.Context, set string) ([]*card.Card, error) {
	setURL := strings.TrimRight(d.SourceURL, "/") + "/" + url.PathEscape(set+".json")
	d.Logger.Debug("downloading set", zap.String("set", set), zap.String("url", setURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, setURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for %s: %w", set, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", set, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: %s", set, resp.Status)
	}

	var upstream []upstreamCard
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", set, err)
	}

	cards := make([]*card.Card, 0, len(upstream))
	for _, u := range upstream {
		cards = append(cards, u.toCard())
	}

	d.Logger.Info("downloaded set", zap.String("set", set), zap.Int("cards", len(cards)))
	return cards, nil
}

// write replaces cards.json atomically while holding the data directory lock.
func (d *Downloader) write(ctx context.Context, cards []*card.Card) error {
	lock := flock.New(filepath.Join(d.DataDir, ".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("error locking data directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("data directory %s is locked by another process", d.DataDir)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(d.DataDir, "cards-*.json.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cards); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing catalog: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.CatalogPath()); err != nil {
		return fmt.Errorf("error replacing catalog: %w", err)
	}
	return nil
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// upstreamCard is one card as published in the set files.
type upstreamCard struct {
	Set         string   `json:"Set"`
	Number      flexText `json:"Number"`
	Name        string   `json:"Name"`
	Subtitle    string   `json:"Subtitle"`
	Type        string   `json:"Type"`
	Aspects     []string `json:"Aspects"`
	Traits      []string `json:"Traits"`
	Arenas      []string `json:"Arenas"`
	Cost        flexInt  `json:"Cost"`
	Power       flexInt  `json:"Power"`
	HP          flexInt  `json:"HP"`
	FrontText   string   `json:"FrontText"`
	BackText    string   `json:"BackText"`
	EpicAction  string   `json:"EpicAction"`
	Rarity      string   `json:"Rarity"`
	Artist      string   `json:"Artist"`
	Unique      bool     `json:"Unique"`
	DoubleSided bool     `json:"DoubleSided"`
	FrontArt    string   `json:"FrontArt"`
	BackArt     string   `json:"BackArt"`
}

func (u upstreamCard) toCard() *card.Card {
	text := u.FrontText
	if text == "" {
		text = u.BackText
	}

	return &card.Card{
		ID:          fmt.Sprintf("%s_%s", u.Set, u.Number),
		Title:       u.Name,
		Subtitle:    u.Subtitle,
		Type:        u.Type,
		Aspects:     nonNil(u.Aspects),
		Traits:      nonNil(u.Traits),
		Arenas:      nonNil(u.Arenas),
		Cost:        u.Cost.value,
		Power:       u.Power.ptr(),
		HP:          u.HP.ptr(),
		Text:        text,
		EpicAction:  u.EpicAction,
		Set:         u.Set,
		Number:      string(u.Number),
		Rarity:      u.Rarity,
		Artist:      u.Artist,
		Unique:      u.Unique,
		DoubleImage: u.DoubleSided,
		FrontArt:    u.FrontArt,
		BackArt:     u.BackArt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// flexInt decodes a number that may be published as a JSON number or string.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Values like "X" or "-" mean no printed number
		return nil
	}
	f.value, f.set = n, true
	return nil
}

func (f flexInt) ptr() *int {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// flexText decodes a string that may be published as a JSON number.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexText(v)
		return nil
	}
	*f = flexText(s)
	return nil
}
