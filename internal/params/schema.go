package params

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SchemaKind is the kind every paramgen schema file declares.
const SchemaKind = "SharedParams"

// Definition is the on-disk shape of a paramgen schema.
type Definition struct {
	APIVersion string `yaml:"apiVersion" validate:"required"`
	Kind       string `yaml:"kind" validate:"required"`
	Name       string `yaml:"name"`
	Spec       Table  `yaml:"spec"`
}

var validate = validator.New()

// LoadSchema reads and parses a YAML schema file
func LoadSchema(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read schema file: %w", err)
	}

	table, err := ParseSchema(data)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseSchema parses a schema from bytes.
//
// Only structure is checked: every param needs a name and a group needs a
// class. Names and docs are kept exactly as written; use Lint to inspect them.
func ParseSchema(data []byte) (Table, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Table{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate.Struct(def); err != nil {
		return Table{}, fmt.Errorf("invalid schema: %w", err)
	}
	if def.Kind != SchemaKind {
		return Table{}, fmt.Errorf("unsupported schema kind %q (expected %s)", def.Kind, SchemaKind)
	}

	return def.Spec, nil
}

// MarshalSchema encodes a table as a schema document.
func MarshalSchema(name string, table Table) ([]byte, error) {
	def := Definition{
		APIVersion: "v1",
		Kind:       SchemaKind,
		Name:       name,
		Spec:       table,
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
