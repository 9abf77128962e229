package catalogfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "homestead://catalog.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// LoadFile reads, validates and registers every building of a catalog file
func LoadFile(path string) (*catalog.MemoryCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates a YAML catalog in three passes: JSON schema for shape,
// struct tags for field values, then each definition's own invariants.
func Parse(raw []byte) (*catalog.MemoryCatalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := validator.New().Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c, err := catalog.NewMemoryCatalog()
	if err != nil {
		return nil, err
	}
	for _, b := range doc.Buildings {
		def, err := b.ToDefinition()
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", b.ID, err)
		}
		if err := c.Register(def); err != nil {
			return nil, fmt.Errorf("building %s: %w", b.ID, err)
		}
	}
	return c, nil
}

func validateSchema(raw []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	var tree interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	// round trip through JSON so the validator sees JSON value types
	buf, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("catalog is not representable as JSON: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return err
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}
