package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/dictcheck/pkg/constants"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Source connections
	Neo4j Neo4jConfig
	HTTP  HTTPConfig

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Neo4jConfig configures graph sources.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration

	// Queries maps labels usable as neo4j:<label> to Cypher read queries.
	Queries map[string]string
}

// HTTPConfig configures API sources.
type HTTPConfig struct {
	Timeout  time.Duration
	PageSize int
	Token    string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .dictcheck.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)

		// A missing default config file is fine; a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading "+v.ConfigFileUsed(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Neo4j: Neo4jConfig{
			URI:      v.GetString("neo4j.uri"),
			Username: v.GetString("neo4j.username"),
			Password: v.GetString("neo4j.password"),
			Database: v.GetString("neo4j.database"),
			Timeout:  v.GetDuration("neo4j.timeout"),
			Queries:  v.GetStringMapString("neo4j.queries"),
		},
		HTTP: HTTPConfig{
			Timeout:  v.GetDuration("http.timeout"),
			PageSize: v.GetInt("http.page_size"),
			Token:    v.GetString("http.token"),
		},

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("neo4j.uri", constants.DefaultNeo4jURI)
	v.SetDefault("neo4j.database", constants.DefaultNeo4jDatabase)
	v.SetDefault("neo4j.timeout", constants.DefaultGraphTimeout)
	v.SetDefault("http.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("http.page_size", constants.DefaultPageSize)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Neo4j.Timeout <= 0 {
		return errors.NewConfigError("neo4j", "timeout must be positive", nil)
	}
	if c.HTTP.Timeout <= 0 {
		return errors.NewConfigError("http", "timeout must be positive", nil)
	}
	if c.HTTP.PageSize <= 0 || c.HTTP.PageSize > constants.MaxPageSize {
		return errors.NewConfigError("http", "page_size must be between 1 and 1000", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden, and
// .env.local is loaded first so it wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
