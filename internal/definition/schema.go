package definition

import "github.com/invopop/jsonschema"

// Schema returns the JSON Schema of a definition file (JSON/YAML layout: a
// top-level array of items).
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	item := reflector.Reflect(&Item{})
	item.Version = ""

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "astroname definition",
		Description: "Ordered list of questions used to compose a name",
		Type:        "array",
		Items:       item,
	}
}
