// Package catalog loads the fixed option lists shipped with the binary.
package catalog

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
)

//go:embed data/*.yaml
var files embed.FS

// Catalog is the parsed embedded data.
type Catalog struct {
	requirementOptions content.RequirementOptions
	faqCategories      []content.FaqCategory
}

var (
	loaded  *Catalog
	loadErr error
	once    sync.Once
)

// Load parses the embedded files once.
func Load() (*Catalog, error) {
	once.Do(func() {
		loaded, loadErr = parse()
	})
	return loaded, loadErr
}

func parse() (*Catalog, error) {
	c := &Catalog{}
	if err := decode("data/requirement_options.yaml", &c.requirementOptions); err != nil {
		return nil, err
	}
	if err := decode("data/faq_categories.yaml", &c.faqCategories); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(name string, out any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) RequirementOptions() content.RequirementOptions {
	return c.requirementOptions
}

func (c *Catalog) FaqCategories() []content.FaqCategory {
	return slices.Clone(c.faqCategories)
}

// IsFaqCategory reports whether value is a known FAQ category.
func (c *Catalog) IsFaqCategory(value string) bool {
	return slices.ContainsFunc(c.faqCategories, func(fc content.FaqCategory) bool {
		return fc.Value == value
	})
}
