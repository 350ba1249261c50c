package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dictcheck/pkg/errors"
)

// TestLoadConfig_Defaults verifies defaults when nothing is configured.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "neo4j://localhost:7687", config.Neo4j.URI)
	assert.Equal(t, "neo4j", config.Neo4j.Database)
	assert.Equal(t, time.Minute, config.Neo4j.Timeout)
	assert.Equal(t, 30*time.Second, config.HTTP.Timeout)
	assert.Equal(t, 100, config.HTTP.PageSize)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Empty(t, config.ConfigFile)
}

// TestLoadConfig_EnvironmentVariables verifies environment variable loading.
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NEO4J_URI", "bolt://graph:7687")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("HTTP_PAGE_SIZE", "250")
	t.Setenv("HTTP_TOKEN", "tok")
	t.Setenv("NEO4J_TIMEOUT", "90s")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph:7687", config.Neo4j.URI)
	assert.Equal(t, "secret", config.Neo4j.Password)
	assert.Equal(t, 250, config.HTTP.PageSize)
	assert.Equal(t, "tok", config.HTTP.Token)
	assert.Equal(t, 90*time.Second, config.Neo4j.Timeout)
}

// TestLoadConfig_File verifies an explicit config file with named queries.
func TestLoadConfig_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "dictcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
neo4j:
  uri: neo4j://kg:7687
  username: reader
  queries:
    symptoms: "MATCH (s:Symptom) RETURN s.name AS term"
http:
  timeout: 5s
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "neo4j://kg:7687", config.Neo4j.URI)
	assert.Equal(t, "reader", config.Neo4j.Username)
	assert.Equal(t, 5*time.Second, config.HTTP.Timeout)
	assert.Equal(t, "MATCH (s:Symptom) RETURN s.name AS term", config.Neo4j.Queries["symptoms"])
}

// TestLoadConfig_DotEnv verifies .env files are read from the working directory.
func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NEO4J_DATABASE=dictionary\n"), 0o644))

	// Registers restoration of the original value; godotenv only fills unset variables.
	t.Setenv("NEO4J_DATABASE", "")
	require.NoError(t, os.Unsetenv("NEO4J_DATABASE"))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dictionary", config.Neo4j.Database)
}

// TestLoadConfig_Invalid verifies bad values fail as configuration errors.
func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HTTP_PAGE_SIZE", "5000")

	_, err := LoadConfig("")
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "http", cfgErr.Component)
}

// TestLoadConfig_MissingExplicitFile verifies an explicit file must exist.
func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestConfig_UpdateFromFlags verifies flags override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	c := &Config{Format: "table", LogLevel: "warn"}
	c.UpdateFromFlags(true, false, true, "json", "")

	assert.True(t, c.Verbose)
	assert.True(t, c.NoColor)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "warn", c.LogLevel)
}
