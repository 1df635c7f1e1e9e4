package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/costops/fleetbook/internal/matcher"
	"github.com/costops/fleetbook/pkg/invoice"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Reconciliation defaults
	MatchThreshold int
	ExcludePool    bool
	OutputDir      string

	// Invoice defaults
	InvoiceEncoding  string
	InvoiceSeparator string
	InvoiceMetaRows  int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.fleetbook.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files before Viper env binding
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("match_threshold", matcher.DefaultThreshold)
	viper.SetDefault("exclude_pool", true)
	viper.SetDefault("output_dir", "outputs")
	viper.SetDefault("invoice_encoding", invoice.DefaultEncoding)
	viper.SetDefault("invoice_separator", invoice.DefaultSeparator)
	viper.SetDefault("invoice_meta_rows", invoice.DefaultMetaRows)

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".fleetbook")
		}
	}

	// Missing config file is fine, defaults apply
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		MatchThreshold: viper.GetInt("match_threshold"),
		ExcludePool:    viper.GetBool("exclude_pool"),
		OutputDir:      viper.GetString("output_dir"),

		InvoiceEncoding:  viper.GetString("invoice_encoding"),
		InvoiceSeparator: viper.GetString("invoice_separator"),
		InvoiceMetaRows:  viper.GetInt("invoice_meta_rows"),

		LogLevel:  viper.GetString("log-level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.LogLevel == "" {
		config.LogLevel = os.Getenv("LOG_LEVEL")
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Called after cobra parses flags so flag values take precedence over
// config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
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

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
