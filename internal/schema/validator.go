// Package schema validates configuration and manifest documents against
// the library's embedded JSON Schema documents, or against caller-supplied
// ones.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	_ "embed"
)

//go:embed schemas/config.schema.json
var configSchemaJSON []byte

//go:embed schemas/manifest.schema.json
var manifestSchemaJSON []byte

// compiledSchemaCacheSize bounds the cache of caller-supplied schemas.
const compiledSchemaCacheSize = 32

// Validator checks documents against compiled JSON schemas. The built-in
// config and manifest schemas are compiled once; caller-supplied schema
// documents are compiled on demand and cached by content digest.
type Validator struct {
	once           sync.Once
	initErr        error
	configSchema   *jsonschema.Schema
	manifestSchema *jsonschema.Schema
	cache          *lru.Cache[uint64, *jsonschema.Schema]
}

// New creates a Validator.
func New() *Validator {
	cache, _ := lru.New[uint64, *jsonschema.Schema](compiledSchemaCacheSize)
	return &Validator{cache: cache}
}

func (v *Validator) init() error {
	v.once.Do(func() {
		v.configSchema, v.initErr = compile("config.schema.json", configSchemaJSON)
		if v.initErr != nil {
			return
		}
		v.manifestSchema, v.initErr = compile("manifest.schema.json", manifestSchemaJSON)
	})
	return v.initErr
}

func compile(name string, raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	schema, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidateConfig checks a configuration document against the built-in
// config schema.
func (v *Validator) ValidateConfig(doc any) error {
	if err := v.init(); err != nil {
		return err
	}
	return validate(v.configSchema, doc)
}

// ValidateManifest checks a manifest document against the built-in
// manifest schema.
func (v *Validator) ValidateManifest(doc any) error {
	if err := v.init(); err != nil {
		return err
	}
	return validate(v.manifestSchema, doc)
}

// ValidateWith checks a document against a caller-supplied schema
// document. Compiled schemas are cached by content digest, so validating
// many documents against the same schema compiles it once.
func (v *Validator) ValidateWith(doc, schemaDoc any) error {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to serialize schema: %w", err)
	}
	key := xxhash.Sum64(raw)

	schema, ok := v.cache.Get(key)
	if !ok {
		schema, err = compile("schema.json", raw)
		if err != nil {
			return err
		}
		v.cache.Add(key, schema)
	}
	return validate(schema, doc)
}

func validate(schema *jsonschema.Schema, doc any) error {
	if err := schema.Validate(doc); err != nil {
		return firstError(err)
	}
	return nil
}

// firstError descends to the first leaf cause so the surfaced message
// names the exact offending field, matching the first-error contract.
func firstError(err error) error {
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		for len(ve.Causes) > 0 {
			ve = ve.Causes[0]
		}
		return errors.New(ve.Error())
	}
	return err
}

// ToDocument converts a typed value into the generic tree form the schema
// engine validates.
func ToDocument(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
