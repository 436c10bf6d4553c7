package organize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/core"
)

func TestClassifier_DefaultTable(t *testing.T) {
	c := MustClassifier(DefaultTable())

	for cat, exts := range DefaultTable() {
		for _, ext := range exts {
			assert.Equal(t, cat, c.Classify(ext), ext)
		}
	}

	cases := map[string]core.Category{
		".PDF":   core.CategoryBooks,
		"epub":   core.CategoryBooks,
		" .Docx": core.CategoryDocuments,
		".txt":   core.CategoryDocuments,
		".mp3":   core.CategoryOther,
		".jpeg":  core.CategoryOther,
		"":       core.CategoryOther,
		".":      core.CategoryOther,
	}
	for ext, want := range cases {
		assert.Equal(t, want, c.Classify(ext), "ext %q", ext)
	}
}

func TestClassifier_Categories(t *testing.T) {
	c := MustClassifier(DefaultTable())
	assert.Equal(t, []core.Category{core.CategoryBooks, core.CategoryDocuments, core.CategoryOther}, c.Categories())
}

func TestClassifier_RejectsDuplicateExtension(t *testing.T) {
	_, err := NewClassifier(Table{
		core.CategoryBooks:     {".pdf"},
		core.CategoryDocuments: {"PDF"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pdf")
}

func TestClassifier_CustomTable(t *testing.T) {
	c, err := NewClassifier(Table{"Comics": {".cbz", ".cbr"}})
	require.NoError(t, err)
	assert.Equal(t, core.Category("Comics"), c.Classify(".CBZ"))
	assert.Equal(t, core.CategoryOther, c.Classify(".pdf"))
}
