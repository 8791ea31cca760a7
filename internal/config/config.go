package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/saify-technologies/generate-agent/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Well-known configuration keys.
const (
	KeyModelID      = "model_id"
	KeyBaseURL      = "base_url"
	KeyMaxSteps     = "max_steps"
	KeyBraveAPIKey  = "brave_api_key"
	KeyOTLPEndpoint = "otlp_endpoint"
)

// DefaultModelID is used when neither config nor flags provide a model.
const DefaultModelID = "meta-llama/Llama-3.3-70B-Instruct"

// DefaultMaxSteps bounds the generation loop when not configured.
const DefaultMaxSteps = 20

// Dir returns the path to the config directory (~/.generate-agent/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.generate-agent/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Environment variables use the DAG_ prefix (e.g., DAG_MODEL_ID).
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyModelID, DefaultModelID)
	viper.SetDefault(KeyBaseURL, branding.RouterBaseURL())
	viper.SetDefault(KeyMaxSteps, DefaultMaxSteps)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetInt returns an integer config value by key.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// HFToken resolves the Hugging Face API token: the explicit value wins,
// then the HF_TOKEN environment variable.
func HFToken(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv("HF_TOKEN")
}
