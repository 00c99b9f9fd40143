package settings

import "github.com/invopop/jsonschema"

// Schema describes the settings file: an object mapping record names to Records.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect(map[string]Record{})
}
