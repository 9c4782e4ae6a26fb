package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/sourcepage/internal/domain"
)

//go:embed categories.yaml
var embedded []byte

var (
	ErrEmptyKey     = errors.New("category key is empty")
	ErrDuplicateKey = errors.New("duplicate category key")
)

// entry mirrors one item of categories.yaml.
type entry struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title,omitempty"`
	Class string `yaml:"class,omitempty"`
}

// Catalog is the ordered, read-only list of page categories.
type Catalog struct {
	categories []domain.Category
	byKey      map[string]domain.Category
}

var defaultCatalog = mustParse(embedded)

// Default returns the compiled-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Parse decodes a YAML category list. List order is page order.
func Parse(data []byte) (*Catalog, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse categories yaml: %w", err)
	}

	c := &Catalog{
		categories: make([]domain.Category, 0, len(entries)),
		byKey:      make(map[string]domain.Category, len(entries)),
	}

	for i, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyKey)
		}
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, key)
		}

		cat := Fallback(key)
		if e.Title != "" {
			cat.Title = e.Title
		}
		if e.Class != "" {
			cat.Class = e.Class
		}

		c.categories = append(c.categories, cat)
		c.byKey[key] = cat
	}

	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: embedded category catalog is invalid: %v", err))
	}
	return c
}

// Categories returns the categories in page order.
// The returned slice is a copy; callers may modify it freely.
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Keys returns the category keys in page order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.categories))
	for i, cat := range c.categories {
		keys[i] = cat.Key
	}
	return keys
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }

// Lookup returns the metadata for key, or a synthesized fallback if the
// catalog has no entry for it.
func (c *Catalog) Lookup(key string) domain.Category {
	if cat, ok := c.byKey[key]; ok {
		return cat
	}
	return Fallback(key)
}

// Fallback builds metadata for a key with no explicit entry:
// "software" -> {Title: "Software", Class: "cat-software"}.
func Fallback(key string) domain.Category {
	return domain.Category{
		Key:   key,
		Title: capitalize(key),
		Class: "cat-" + key,
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}
