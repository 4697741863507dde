package edgeconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/legacy"
)

// Loader reads configuration documents from files or raw bytes. It is the
// only ingestion path that sees raw bytes, so it owns the legacy
// normalization: flat behavior properties and V3 rule shapes are rewritten
// before the typed decode would drop them.
type Loader struct {
	envPattern *regexp.Regexp
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		envPattern: regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`),
	}
}

// Load reads and parses a configuration file. YAML and JSON are both
// accepted; the format is sniffed from the content.
func (l *Loader) Load(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return l.Parse(data)
}

// Parse parses a configuration document from raw bytes.
func (l *Loader) Parse(data []byte) (*config.Config, error) {
	expanded := []byte(l.expandEnvVars(string(data)))

	raw := expanded
	if !looksLikeJSON(expanded) {
		converted, err := yaml.YAMLToJSON(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		raw = converted
	}

	raw = legacy.Convert(raw)

	var cfg config.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables keep the original placeholder, so criterion variables
// like ${uri} pass through untouched.
func (l *Loader) expandEnvVars(input string) string {
	return l.envPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

func looksLikeJSON(data []byte) bool {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
