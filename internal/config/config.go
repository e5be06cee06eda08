// Package config provides configuration types and defaults for signup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/output"
	"github.com/zjrosen/signup/internal/registration"
)

// DefaultConfigPath is where a config file is created when none is found.
const DefaultConfigPath = ".signup/config.yaml"

// Config holds all configuration options for signup.
type Config struct {
	Form   FormConfig   `mapstructure:"form"`
	Output OutputConfig `mapstructure:"output"`
	UI     UIConfig     `mapstructure:"ui"`
}

// FormConfig holds the registration constraints.
type FormConfig struct {
	EmailDomain       string  `mapstructure:"email_domain"`        // Required email suffix, e.g. "@rocketseat.com.br"
	MinPasswordLength int     `mapstructure:"min_password_length"` // Minimum password length in characters
	KnowledgeMin      float64 `mapstructure:"knowledge_min"`       // Lowest accepted knowledge value
	KnowledgeMax      float64 `mapstructure:"knowledge_max"`       // Highest accepted knowledge value
}

// Options converts the form settings to schema options.
func (f FormConfig) Options() registration.Options {
	return registration.Options{
		EmailDomain:       f.EmailDomain,
		MinPasswordLength: f.MinPasswordLength,
		KnowledgeMin:      f.KnowledgeMin,
		KnowledgeMax:      f.KnowledgeMax,
	}
}

// OutputConfig controls how a valid record is displayed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "json" (default) or "yaml"
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Width         int    `mapstructure:"width"`          // Form width in cells
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
	Mouse         bool   `mapstructure:"mouse"`          // Enable mouse clicks on buttons
}

// Defaults returns the default configuration.
func Defaults() Config {
	opts := registration.DefaultOptions()
	return Config{
		Form: FormConfig{
			EmailDomain:       opts.EmailDomain,
			MinPasswordLength: opts.MinPasswordLength,
			KnowledgeMin:      opts.KnowledgeMin,
			KnowledgeMax:      opts.KnowledgeMax,
		},
		Output: OutputConfig{
			Format: string(output.FormatJSON),
		},
		UI: UIConfig{
			Width:         60,
			MarkdownStyle: "dark",
			Mouse:         true,
		},
	}
}

// SetDefaults registers every default value on v so that partial config
// files fall back to Defaults for missing keys.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("form.email_domain", d.Form.EmailDomain)
	v.SetDefault("form.min_password_length", d.Form.MinPasswordLength)
	v.SetDefault("form.knowledge_min", d.Form.KnowledgeMin)
	v.SetDefault("form.knowledge_max", d.Form.KnowledgeMax)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("ui.width", d.UI.Width)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.mouse", d.UI.Mouse)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if err := ValidateForm(c.Form); err != nil {
		return err
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return ValidateUI(c.UI)
}

// ValidateForm checks the form constraints.
func ValidateForm(f FormConfig) error {
	if f.EmailDomain == "" {
		return fmt.Errorf("form.email_domain is required")
	}
	if !strings.HasPrefix(f.EmailDomain, "@") {
		return fmt.Errorf("form.email_domain must start with \"@\", got %q", f.EmailDomain)
	}
	if f.MinPasswordLength < 1 {
		return fmt.Errorf("form.min_password_length must be at least 1, got %d", f.MinPasswordLength)
	}
	if f.KnowledgeMin > f.KnowledgeMax {
		return fmt.Errorf("form.knowledge_min (%g) must not exceed form.knowledge_max (%g)", f.KnowledgeMin, f.KnowledgeMax)
	}
	return nil
}

// ValidateUI checks the UI options.
func ValidateUI(u UIConfig) error {
	if u.Width != 0 && u.Width < 40 {
		return fmt.Errorf("ui.width must be at least 40, got %d", u.Width)
	}
	switch u.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\" or \"notty\", got %q", u.MarkdownStyle)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# signup configuration

# Registration constraints
form:
  email_domain: "@rocketseat.com.br"  # Emails must end with this suffix
  min_password_length: 6              # Minimum password length in characters
  knowledge_min: 1                    # Knowledge range, inclusive
  knowledge_max: 100

# How a valid record is echoed back: "json" or "yaml"
output:
  format: json

# UI settings
ui:
  width: 60              # Form width in cells (minimum 40)
  markdown_style: dark   # Output pane style: "dark", "light" or "notty"
  mouse: true            # Click buttons and row markers with the mouse
`
}

// WriteDefaultConfig writes the default config template to configPath.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
