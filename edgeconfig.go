// Package edgeconfig transforms developer-authored edge configuration
// documents into the strict manifest consumed by the platform API, and
// back. The whole pipeline is synchronous and side-effect-free: no I/O,
// no shared state across calls.
package edgeconfig

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/schema"
	"github.com/wudi/edgeconfig/internal/strategy"
	"github.com/wudi/edgeconfig/manifest"
)

// validator compiles the built-in schemas once per process.
var validator = schema.New()

// Option adjusts a transformation call.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a logger to the pipeline. Silently dropped behavior
// keys are reported at debug level; without a logger they stay silent.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ProcessConfig validates a configuration document and transforms it into
// a manifest. The first validation error or strategy invariant violation
// aborts the call; no partial manifest is returned.
func ProcessConfig(cfg *config.Config, opts ...Option) (*manifest.Manifest, error) {
	o := buildOptions(opts)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return strategy.Dispatch(cfg, o.logger)
}

// ConvertJSONConfigToObject parses a manifest JSON document, validates it
// against the manifest schema and transforms it back into a configuration
// document.
func ConvertJSONConfigToObject(data []byte, opts ...Option) (*config.Config, error) {
	o := buildOptions(opts)

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("Invalid JSON configuration.")
	}
	if err := validator.ValidateManifest(doc); err != nil {
		return nil, err
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("Invalid JSON configuration.")
	}
	return strategy.DispatchReverse(&m, o.logger)
}

// ValidateConfig checks a configuration document against the built-in
// config schema, or against a caller-supplied schema document if one is
// given.
func ValidateConfig(cfg any, customSchema ...any) error {
	return validate(cfg, customSchema, validator.ValidateConfig)
}

// ValidateManifest checks a manifest document against the built-in
// manifest schema, or against a caller-supplied schema document if one is
// given.
func ValidateManifest(m any, customSchema ...any) error {
	return validate(m, customSchema, validator.ValidateManifest)
}

func validate(doc any, customSchema []any, builtin func(any) error) error {
	tree, err := schema.ToDocument(doc)
	if err != nil {
		return err
	}
	if len(customSchema) > 0 && customSchema[0] != nil {
		return validator.ValidateWith(tree, customSchema[0])
	}
	return builtin(tree)
}

// DefineConfig validates a configuration document and returns it
// unchanged. It exists so hand-authored configurations fail fast at
// definition time.
func DefineConfig(cfg *config.Config) (*config.Config, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
