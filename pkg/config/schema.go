package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/marmos91/sharefs/internal/bytesize"
)

// Schema returns the JSON schema of the configuration file, for editor
// completion and external validation.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(time.Duration(0)):
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
					Description: "Go duration, e.g. 30s or 1h30m",
				}
			case reflect.TypeOf(bytesize.ByteSize(0)):
				return &jsonschema.Schema{
					OneOf: []*jsonschema.Schema{
						{Type: "integer", Minimum: json.Number("0")},
						{Type: "string", Pattern: `^\s*[0-9]+(\.[0-9]+)?\s*([KkMmGgTt]i?[Bb]?|[Bb])?\s*$`},
					},
					Description: "Byte size, e.g. 64Mi or 100MB",
				}
			}
			return nil
		},
	}
	s := r.Reflect(&Config{})
	s.Title = "sharefs configuration"
	return s
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
