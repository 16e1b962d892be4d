// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config represents the CLI configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or
// must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume   string `json:"resume,omitempty"`                           // Path to source resume/history text file
	Job      string `json:"job,omitempty"`                              // Path to job posting text file
	JobURL   string `json:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from
	Template string `json:"template,omitempty"`                         // Path to document template JSON

	// Services
	APIKey      string `json:"api_key,omitempty"`                               // Gemini API key
	Model       string `json:"model,omitempty"`                                 // Generation model override for every tier
	RendererURL string `json:"renderer_url,omitempty" validate:"omitempty,url"` // Rendering service base URL

	// Behavior
	Verbose    bool   `json:"verbose,omitempty"`                      // Print detailed progress boxes
	UseBrowser bool   `json:"use_browser,omitempty"`                  // Use headless browser for SPA job boards
	PreviewPDF string `json:"preview_pdf,omitempty"`                  // Write a local PDF preview to this path
	MaxWorkers int    `json:"max_workers,omitempty" validate:"gte=0"` // Matcher worker pool size
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv fills service credentials and endpoints from the
// environment. Explicit config values win over environment values.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.RendererURL == "" {
		c.RendererURL = os.Getenv("RENDERER_URL")
	}
}

// Validate checks field formats and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	for name, path := range map[string]string{
		"resume":   c.Resume,
		"job":      c.Job,
		"template": c.Template,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, used to apply config-file values under CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.RendererURL == "" {
		result.RendererURL = defaults.RendererURL
	}
	if result.PreviewPDF == "" {
		result.PreviewPDF = defaults.PreviewPDF
	}
	if result.MaxWorkers == 0 {
		result.MaxWorkers = defaults.MaxWorkers
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	return result
}
