package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "invoicer"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Logging
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted settings database
}

type InvoiceConfig struct {
	OutputDir                 string `yaml:"output_dir"`                  // Directory for generated PDFs
	FilenameTemplate          string `yaml:"filename_template"`           // e.g. "INV_{sequence}"
	DefaultServiceDescription string `yaml:"default_service_description"` // Pre-filled line item description
	DateFormat                string `yaml:"date_format"`                 // Go layout used for the invoice date
	OpenAfterGenerate         bool   `yaml:"open_after_generate"`         // Open the PDF in the OS viewer
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// Dir returns ~/.config/invoicer
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(homeDir, ".config", appName)
}

// DefaultConfigPath returns ~/.config/invoicer/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "invoicer.db"),
		},
		Invoice: InvoiceConfig{
			OutputDir:                 filepath.Join(dir, "invoices"),
			FilenameTemplate:          "INV_{sequence}",
			DefaultServiceDescription: "Professional Services",
			DateFormat:                "2006-01-02",
			OpenAfterGenerate:         false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: filepath.Join(dir, "invoicer.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Values missing from the file keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (database, invoices, log file)
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		c.Invoice.OutputDir,
	}
	if c.Log.Output != "" && c.Log.Output != "stdout" && c.Log.Output != "stderr" {
		dirs = append(dirs, filepath.Dir(c.Log.Output))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
