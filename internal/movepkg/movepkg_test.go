package movepkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `[package]
name = "launchpad"
version = "1.0.0"
authors = []

[addresses]
launchpad_addr = "_"
minter = "0x93f379226ae424367346b2803b340b1eda36cb2416037a7e71a6761e3a551e5c"

[dependencies.AptosFramework]
git = "https://github.com/aptos-labs/aptos-core.git"
rev = "mainnet"
subdir = "aptos-move/framework/aptos-framework"

[dependencies.AptosTokenObjects]
git = "https://github.com/aptos-labs/aptos-core.git"
rev = "mainnet"
subdir = "aptos-move/framework/aptos-token-objects"
`

func TestParse(t *testing.T) {
	pkg, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "launchpad", pkg.Name)
	assert.Equal(t, "1.0.0", pkg.Version)
	assert.Equal(t, []string{"AptosFramework", "AptosTokenObjects"}, pkg.Dependencies)
	assert.Equal(t, []string{"launchpad_addr"}, pkg.UnsetAddresses())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[package\nname="},
		{"no name", "[package]\nversion = \"1.0.0\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidManifest))
		})
	}
}

func TestFind(t *testing.T) {
	t.Run("move dir", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "move"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "move", ManifestName), []byte(sampleManifest), 0o644))

		pkg, err := Find(root)
		require.NoError(t, err)
		require.NotNil(t, pkg)
		assert.Equal(t, "move", pkg.Dir)
		assert.Equal(t, "launchpad", pkg.Name)
	})

	t.Run("project root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"hello\"\n"), 0o644))

		pkg, err := Find(root)
		require.NoError(t, err)
		require.NotNil(t, pkg)
		assert.Equal(t, ".", pkg.Dir)
		assert.Empty(t, pkg.UnsetAddresses())
	})

	t.Run("absent", func(t *testing.T) {
		pkg, err := Find(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, pkg)
	})

	t.Run("broken manifest", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "move"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "move", ManifestName), []byte("[package"), 0o644))

		_, err := Find(root)
		assert.Error(t, err)
	})
}
