package project

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// ProjectNameKey is written to every env file. The Move publish scripts
// read it to name the deployed package.
const ProjectNameKey = "PROJECT_NAME"

// EnvValues builds the key set written for tmpl and sel: the network key,
// the project name, and every placeholder key with an empty value.
func EnvValues(tmpl catalog.Template, sel models.Selection) map[string]string {
	env := make(map[string]string, len(tmpl.EnvKeys)+2)
	for _, k := range tmpl.EnvKeys {
		env[k] = ""
	}

	key := tmpl.NetworkKey
	if key == "" {
		key = catalog.DefaultNetworkKey
	}
	env[key] = sel.Network.String()
	env[ProjectNameKey] = sel.ProjectName
	return env
}

// WriteEnv writes the template's env file under targetDir, replacing any
// file already there, and returns its path.
func WriteEnv(targetDir string, tmpl catalog.Template, sel models.Selection) (string, error) {
	rel := tmpl.EnvFile
	if rel == "" {
		rel = catalog.DefaultEnvFile
	}
	path := filepath.Join(targetDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &IOError{Op: "write-env", Path: path, Err: err}
	}
	if err := godotenv.Write(EnvValues(tmpl, sel), path); err != nil {
		return "", &IOError{Op: "write-env", Path: path, Err: err}
	}
	return path, nil
}

// ReadEnv parses an env file written by WriteEnv.
func ReadEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, &IOError{Op: "read-env", Path: path, Err: err}
	}
	return env, nil
}
