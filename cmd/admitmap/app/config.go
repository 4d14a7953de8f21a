package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data configuration
	CatalogPath   string
	OverridesPath string
	Supervised    bool

	// Server configuration
	ServerHost      string
	ServerPort      int
	ServerRateLimit int
	ServerCacheTTL  time.Duration
	ServerCORS      bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.admitmap.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ADMITMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".admitmap")
		}
	}

	// Missing config files are fine; defaults carry the day.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		CatalogPath:   viper.GetString("catalog"),
		OverridesPath: viper.GetString("overrides"),
		Supervised:    viper.GetBool("supervised"),

		ServerHost:      viper.GetString("server.host"),
		ServerPort:      viper.GetInt("server.port"),
		ServerRateLimit: viper.GetInt("server.rate_limit"),
		ServerCacheTTL:  viper.GetDuration("server.cache_ttl"),
		ServerCORS:      viper.GetBool("server.cors"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Defaults
	if config.ServerHost == "" {
		config.ServerHost = "localhost"
	}
	if config.ServerPort == 0 {
		config.ServerPort = 8080
	}
	if config.ServerRateLimit == 0 {
		config.ServerRateLimit = 100
	}
	if config.ServerCacheTTL == 0 {
		config.ServerCacheTTL = 5 * time.Minute
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags so flags
// take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns an environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
