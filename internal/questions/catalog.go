package questions

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the static mapping from normalized technology names to question
// pools. It is read-only after construction; lookups never mutate it.
type Catalog struct {
	aliases map[string]string
	pools   map[string][]Item
}

type catalogFile struct {
	Aliases map[string]string `yaml:"aliases"`
	Pools   map[string][]Item `yaml:"pools"`
}

// NewCatalog loads the built-in catalog shipped with the binary.
func NewCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("parse built-in catalog: %w", err)
	}

	c := &Catalog{
		aliases: make(map[string]string, len(file.Aliases)),
		pools:   make(map[string][]Item, len(file.Pools)),
	}

	for alias, target := range file.Aliases {
		c.aliases[fold(alias)] = fold(target)
	}
	c.merge(file.Pools)

	return c, nil
}

// Normalize folds case and resolves known aliases ("js" -> "javascript").
// Normalization is deterministic; there is no fuzzy matching.
func (c *Catalog) Normalize(technology string) string {
	name := fold(technology)
	if target, ok := c.aliases[name]; ok {
		return target
	}
	return name
}

// QuestionsFor returns a copy of the question pool for the technology, or an
// empty slice when it is unrecognized.
func (c *Catalog) QuestionsFor(technology string) []Item {
	pool := c.pools[c.Normalize(technology)]
	out := make([]Item, len(pool))
	copy(out, pool)
	return out
}

// Known reports whether the catalog has a non-empty pool for the technology.
func (c *Catalog) Known(technology string) bool {
	return len(c.pools[c.Normalize(technology)]) > 0
}

// MergeConfig adds extra pools supplied via configuration. The raw value
// comes from viper as a generic map and is decoded into typed items.
func (c *Catalog) MergeConfig(raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}

	var pools map[string][]Item
	cfg := &mapstructure.DecoderConfig{
		Result:  &pools,
		TagName: "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("build catalog decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode extra catalog pools: %w", err)
	}

	c.merge(pools)
	return nil
}

func (c *Catalog) merge(pools map[string][]Item) {
	for name, pool := range pools {
		tech := c.Normalize(name)
		for _, item := range pool {
			if strings.TrimSpace(item.Prompt) == "" {
				continue
			}
			item.Technology = tech
			if item.Difficulty == "" {
				item.Difficulty = DifficultyIntermediate
			}
			c.pools[tech] = append(c.pools[tech], item)
		}
	}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
