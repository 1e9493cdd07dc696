package definition

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/tohch4/pinty/errors"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed defaults.yaml
var defaultsYAML []byte

// ParsePack decodes a YAML definition pack and validates its structure
// against the embedded JSON Schema. All failures are
// DefinitionSyntaxError; the registry performs referential checks later.
func ParsePack(data []byte) (Pack, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Pack{}, &errors.DefinitionSyntaxError{Msg: "not valid YAML: " + err.Error()}
	}

	// gojsonschema speaks JSON, so the decoded document is re-encoded
	// before validation.
	document, err := json.Marshal(raw)
	if err != nil {
		return Pack{}, &errors.DefinitionSyntaxError{Msg: "cannot encode document for schema validation: " + err.Error()}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return Pack{}, &errors.DefinitionSyntaxError{Msg: "schema validation: " + err.Error()}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return Pack{}, &errors.DefinitionSyntaxError{Field: first.Field(), Msg: first.Description()}
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, &errors.DefinitionSyntaxError{Msg: "cannot decode records: " + err.Error()}
	}
	if err := pack.Validate(); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

var loadDefaults = sync.OnceValue(func() Pack {
	pack, err := ParsePack(defaultsYAML)
	if err != nil {
		// The embedded pack ships with the library; failing to parse it
		// is a build defect, not a runtime condition.
		panic("definition: embedded default pack is invalid: " + err.Error())
	}
	return pack
})

// DefaultPack returns the embedded default definitions: SI dimensions,
// prefixes, base and named derived units, common non-SI units,
// temperature scales and decibel-style logarithmic units.
func DefaultPack() Pack {
	return loadDefaults()
}
