package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/registration"
)

// loadConfigFromYAML loads a Config from YAML content through viper, the
// same way the root command does.
func loadConfigFromYAML(t *testing.T, content string) Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "@rocketseat.com.br", cfg.Form.EmailDomain)
	require.Equal(t, 6, cfg.Form.MinPasswordLength)
	require.Equal(t, 1.0, cfg.Form.KnowledgeMin)
	require.Equal(t, 100.0, cfg.Form.KnowledgeMax)
	require.Equal(t, "json", cfg.Output.Format)
	require.Equal(t, 60, cfg.UI.Width)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.True(t, cfg.UI.Mouse)
	require.NoError(t, Validate(cfg))
}

func TestFormConfig_Options(t *testing.T) {
	require.Equal(t, registration.DefaultOptions(), Defaults().Form.Options())
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
form:
  email_domain: "@example.com"
output:
  format: yaml
`)

	require.Equal(t, "@example.com", cfg.Form.EmailDomain)
	require.Equal(t, 6, cfg.Form.MinPasswordLength)
	require.Equal(t, "yaml", cfg.Output.Format)
	require.Equal(t, 60, cfg.UI.Width)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("form:\n  min_password_length: 10\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Form.MinPasswordLength)
	require.Equal(t, "@rocketseat.com.br", cfg.Form.EmailDomain)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty domain", mutate: func(c *Config) { c.Form.EmailDomain = "" }, wantErr: "email_domain is required"},
		{name: "domain without at", mutate: func(c *Config) { c.Form.EmailDomain = "example.com" }, wantErr: "must start with"},
		{name: "zero password length", mutate: func(c *Config) { c.Form.MinPasswordLength = 0 }, wantErr: "min_password_length"},
		{name: "inverted range", mutate: func(c *Config) { c.Form.KnowledgeMin = 50; c.Form.KnowledgeMax = 10 }, wantErr: "must not exceed"},
		{name: "equal range", mutate: func(c *Config) { c.Form.KnowledgeMin = 5; c.Form.KnowledgeMax = 5 }},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "yml format", mutate: func(c *Config) { c.Output.Format = "yml" }},
		{name: "narrow width", mutate: func(c *Config) { c.UI.Width = 20 }, wantErr: "ui.width"},
		{name: "zero width", mutate: func(c *Config) { c.UI.Width = 0 }},
		{name: "bad style", mutate: func(c *Config) { c.UI.MarkdownStyle = "dracula" }, wantErr: "markdown_style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
