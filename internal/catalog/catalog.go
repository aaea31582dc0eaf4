package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/graced/internal/model"
)

//go:embed catalog.yaml
var embedded []byte

var ErrUnknownQuote = errors.New("catalog: unknown quote")

// Catalog is the static teaching content the player draws from.
type Catalog struct {
	Categories []model.Category `yaml:"categories"`
	Quotes     []model.Quote    `yaml:"quotes"`
	Rescue     []model.Quote    `yaml:"rescue"`
}

// Default returns the built-in catalog.
func Default() (Catalog, error) {
	return Parse(embedded)
}

func LoadFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Load reads path when set and falls back to the built-in catalog.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Quotes)+len(c.Rescue))
	for _, cat := range c.Categories {
		if err := cat.Validate(); err != nil {
			return err
		}
	}
	for _, q := range slices.Concat(c.Quotes, c.Rescue) {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quote %q: %w", q.ID, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("catalog: duplicate quote id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Lookup finds a quote by id in both the main and rescue sets.
func (c Catalog) Lookup(id string) (model.Quote, error) {
	for _, q := range slices.Concat(c.Quotes, c.Rescue) {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Quote{}, fmt.Errorf("%w: %q", ErrUnknownQuote, id)
}

// LookupAll resolves ids in order and skips unknown ones.
func (c Catalog) LookupAll(ids []string) []model.Quote {
	out := make([]model.Quote, 0, len(ids))
	for _, id := range ids {
		if q, err := c.Lookup(id); err == nil {
			out = append(out, q)
		}
	}
	return out
}

// ByCategory matches case-insensitively; an empty name returns every quote.
func (c Catalog) ByCategory(name string) []model.Quote {
	name = strings.TrimSpace(name)
	out := make([]model.Quote, 0, len(c.Quotes))
	for _, q := range c.Quotes {
		if name == "" || strings.EqualFold(q.Category, name) {
			out = append(out, q)
		}
	}
	return out
}

// RescuePool returns rescue quotes in any of categories, or all of them when
// none match.
func (c Catalog) RescuePool(categories []string) []model.Quote {
	out := make([]model.Quote, 0, len(c.Rescue))
	for _, q := range c.Rescue {
		for _, cat := range categories {
			if strings.EqualFold(q.Category, cat) {
				out = append(out, q)
				break
			}
		}
	}
	if len(out) == 0 {
		return append(out, c.Rescue...)
	}
	return out
}

// PickRescue draws one quote from the rescue pool. ok is false for an empty
// catalog.
func (c Catalog) PickRescue(settings model.RescueSettings, r *rand.Rand) (model.Quote, bool) {
	pool := c.RescuePool(settings.QuoteCategories)
	if len(pool) == 0 {
		return model.Quote{}, false
	}
	if r == nil {
		return pool[rand.IntN(len(pool))], true
	}
	return pool[r.IntN(len(pool))], true
}
