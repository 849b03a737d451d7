// Package category holds the fixed set of marketplace categories.
package category

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Category pairs a display name with its URL-safe slug.
type Category struct {
	Name string `yaml:"name" json:"name"`
	Slug string `yaml:"slug" json:"slug"`
}

// Registry is an immutable, ordered set of categories.
type Registry struct {
	list   []Category
	bySlug map[string]int
	byName map[string]int
}

// Load parses the embedded category list.
func Load() (*Registry, error) {
	return Parse(categoriesYAML)
}

// MustLoad is Load that panics on error.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a registry from a YAML list of name/slug pairs.
func Parse(data []byte) (*Registry, error) {
	var list []Category
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	return New(list)
}

// New builds a registry from the given categories, keeping their order.
func New(list []Category) (*Registry, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("no categories defined")
	}

	r := &Registry{
		list:   make([]Category, len(list)),
		bySlug: make(map[string]int, len(list)),
		byName: make(map[string]int, len(list)),
	}
	copy(r.list, list)

	for i, c := range r.list {
		if c.Name == "" {
			return nil, fmt.Errorf("category %d: name required", i+1)
		}
		if !slugPattern.MatchString(c.Slug) {
			return nil, fmt.Errorf("category %q: invalid slug %q", c.Name, c.Slug)
		}
		if _, dup := r.bySlug[c.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", c.Slug)
		}
		if _, dup := r.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate category name %q", c.Name)
		}
		r.bySlug[c.Slug] = i
		r.byName[c.Name] = i
	}

	return r, nil
}

// BySlug looks up a category by slug.
func (r *Registry) BySlug(slug string) (Category, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return r.list[i], true
}

// ByName looks up a category by display name.
func (r *Registry) ByName(name string) (Category, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Category{}, false
	}
	return r.list[i], true
}

// All returns every category in registry order. The slice is a copy.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.list))
	copy(out, r.list)
	return out
}
