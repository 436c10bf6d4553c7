package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   library/ (.shelf)
	//     Books/2023/
	//   elsewhere/
	//   decoy/.shelf (a file, not a library)
	base := t.TempDir()
	library := filepath.Join(base, "library")
	nested := filepath.Join(library, "Books", "2023")
	elsewhere := filepath.Join(base, "elsewhere")
	decoy := filepath.Join(base, "decoy")

	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.MkdirAll(elsewhere, 0755))
	require.NoError(t, os.MkdirAll(decoy, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(library, DefaultSystemDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(decoy, DefaultSystemDir), nil, 0644))

	tests := []struct {
		name     string
		start    string
		wantRoot string
	}{
		{"At Root", library, library},
		{"Nested", nested, library},
		{"Not A Library", elsewhere, ""},
		{"File Named Like System Dir", decoy, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.start, "")
			if tt.wantRoot == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}

func TestFindRoot_CustomSystemDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".library"), 0755))

	got, err := FindRoot(root, ".library")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindRoot(root, "")
	assert.Error(t, err)
}
