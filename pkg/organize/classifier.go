package organize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/shelf/pkg/core"
)

// Table maps a category to the extensions it recognises.
type Table map[core.Category][]string

// DefaultTable returns the built-in category table.
func DefaultTable() Table {
	return Table{
		core.CategoryBooks:     {".pdf", ".epub", ".mobi", ".azw3", ".djvu"},
		core.CategoryDocuments: {".doc", ".docx", ".txt", ".odt", ".xlsx", ".rtf", ".md"},
	}
}

// Classifier maps file extensions to categories.
type Classifier struct {
	byExt      map[string]core.Category
	categories []core.Category
}

// NewClassifier builds a classifier from t. An extension may belong to one category only.
func NewClassifier(t Table) (*Classifier, error) {
	c := &Classifier{byExt: make(map[string]core.Category)}

	names := make([]string, 0, len(t))
	for cat := range t {
		names = append(names, string(cat))
	}
	sort.Strings(names)

	for _, name := range names {
		cat := core.Category(name)
		if cat == "" {
			return nil, fmt.Errorf("category table: empty category name")
		}
		if cat != core.CategoryOther {
			c.categories = append(c.categories, cat)
		}
		for _, ext := range t[cat] {
			norm := NormalizeExt(ext)
			if norm == "" {
				return nil, fmt.Errorf("category table: empty extension in %s", cat)
			}
			if prev, ok := c.byExt[norm]; ok && prev != cat {
				return nil, fmt.Errorf("category table: extension %s listed under both %s and %s", norm, prev, cat)
			}
			c.byExt[norm] = cat
		}
	}
	c.categories = append(c.categories, core.CategoryOther)

	return c, nil
}

// MustClassifier is NewClassifier for tables known to be valid.
func MustClassifier(t Table) *Classifier {
	c, err := NewClassifier(t)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the category of ext, or Other if no category claims it.
// Matching is case-insensitive and the leading dot is optional.
func (c *Classifier) Classify(ext string) core.Category {
	if cat, ok := c.byExt[NormalizeExt(ext)]; ok {
		return cat
	}
	return core.CategoryOther
}

// Categories returns every category in directory order, Other last.
func (c *Classifier) Categories() []core.Category {
	out := make([]core.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// NormalizeExt lower-cases ext and makes sure it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
