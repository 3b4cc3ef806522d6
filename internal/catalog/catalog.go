// Package catalog describes the navigable items a host exposes and loads
// them from YAML files.
package catalog

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/navwatch/internal/events"
)

// Item is a navigable destination supplied by the host. The engine only
// scores and filters items; it never creates them.
type Item struct {
	ID       string   `yaml:"id" json:"id"`
	Label    string   `yaml:"label" json:"label"`
	Category string   `yaml:"category" json:"category"`
	Contexts []string `yaml:"contexts,omitempty" json:"contexts,omitempty"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// Relevance is an optional static hint in [0,1].
	Relevance *float64 `yaml:"relevance,omitempty" json:"relevance,omitempty"`
}

// Hint returns the item's relevance hint clamped to [0,1] and whether a
// usable hint is present. NaN and negative hints count as absent.
func (it Item) Hint() (float64, bool) {
	if it.Relevance == nil {
		return 0, false
	}
	h := *it.Relevance
	if math.IsNaN(h) || h < 0 {
		return 0, false
	}
	if h > 1 {
		h = 1
	}
	return h, true
}

// MatchesContext reports whether the item is tagged with ctx or belongs to a
// category of the same name.
func (it Item) MatchesContext(ctx events.Context) bool {
	if strings.EqualFold(it.Category, string(ctx)) {
		return true
	}
	for _, c := range it.Contexts {
		if strings.EqualFold(c, string(ctx)) {
			return true
		}
	}
	return false
}

// DisplayName returns the label, falling back to the id.
func (it Item) DisplayName() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// Catalog is an ordered list of items.
type Catalog []Item

// Index returns a lookup from item id to item.
func (c Catalog) Index() map[string]Item {
	idx := make(map[string]Item, len(c))
	for _, it := range c {
		idx[it.ID] = it
	}
	return idx
}

// Get returns the item with the given id.
func (c Catalog) Get(id string) (Item, bool) {
	for _, it := range c {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate checks that every item has a unique, non-empty id.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, it := range c {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		if seen[id] {
			return fmt.Errorf("item %d: duplicate id %q", i, id)
		}
		seen[id] = true
	}
	return nil
}

// file is the on-disk catalog layout.
type file struct {
	Items Catalog `yaml:"items"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := f.Items.Validate(); err != nil {
		return nil, err
	}
	return f.Items, nil
}

// Load reads and parses the catalog file at path. A missing file yields an
// empty catalog.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(data)
}
