package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

func mustResolve(t *testing.T, path string) catalog.Template {
	t.Helper()
	tmpl, err := catalog.Default().Resolve(path)
	require.NoError(t, err)
	return tmpl
}

func selectionFor(tmpl catalog.Template, name string, network models.Network) models.Selection {
	return models.Selection{
		ProjectName: name,
		ProjectType: tmpl.ProjectType,
		Template:    tmpl.Info(),
		Network:     network,
	}
}

func TestWriteEnv_Boilerplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := mustResolve(t, "boilerplate-template")

	path, err := WriteEnv(dir, tmpl, selectionFor(tmpl, "my-aptos-dapp", models.NetworkTestnet))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_NAME=\"my-aptos-dapp\"\nVITE_APP_NETWORK=\"testnet\"\nVITE_MODULE_ADDRESS=\"\"\n", string(data))
}

func TestWriteEnv_RoundTrip(t *testing.T) {
	for _, path := range catalog.Default().Paths() {
		t.Run(path, func(t *testing.T) {
			tmpl := mustResolve(t, path)
			for _, network := range tmpl.Networks {
				dir := t.TempDir()
				sel := selectionFor(tmpl, "dapp", network)

				envPath, err := WriteEnv(dir, tmpl, sel)
				require.NoError(t, err)

				env, err := ReadEnv(envPath)
				require.NoError(t, err)
				assert.Equal(t, EnvValues(tmpl, sel), env)
				assert.Equal(t, network.String(), env[tmpl.NetworkKey])
			}
		})
	}
}

func TestWriteEnv_OverwritesCopiedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STALE=1\n"), 0o644))

	tmpl := mustResolve(t, "nft-minting-dapp-template")
	envPath, err := WriteEnv(dir, tmpl, selectionFor(tmpl, "nft", models.NetworkMainnet))
	require.NoError(t, err)

	env, err := ReadEnv(envPath)
	require.NoError(t, err)
	assert.NotContains(t, env, "STALE")
	assert.Equal(t, "mainnet", env["VITE_APP_NETWORK"])
	assert.Equal(t, "", env["VITE_COLLECTION_CREATOR_ADDRESS"])
}

func TestWriteEnv_NestedEnvFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := catalog.Template{
		Path:       "custom",
		EnvFile:    "frontend/.env.local",
		NetworkKey: "NEXT_PUBLIC_APP_NETWORK",
		Networks:   []models.Network{models.NetworkDevnet},
	}

	envPath, err := WriteEnv(dir, tmpl, selectionFor(tmpl, "nested", models.NetworkDevnet))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frontend", ".env.local"), envPath)

	env, err := ReadEnv(envPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"NEXT_PUBLIC_APP_NETWORK": "devnet",
		ProjectNameKey:            "nested",
	}, env)
}

func TestWriteEnv_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	tmpl := mustResolve(t, "boilerplate-template")
	_, err := WriteEnv(blocker, tmpl, selectionFor(tmpl, "x", models.NetworkTestnet))

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write-env", ioErr.Op)
}

func TestReadEnv_Missing(t *testing.T) {
	_, err := ReadEnv(filepath.Join(t.TempDir(), ".env"))
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}
