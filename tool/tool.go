package tool

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/randalmurphal/parlay/cohere"
)

// Spec describes a tool to the model.
type Spec struct {
	// Name identifies the tool. Must be unique within a registry.
	Name string `json:"name"`

	// Description tells the model when to use the tool.
	Description string `json:"description"`

	// Parameters is the JSON Schema for the tool's arguments.
	Parameters json.RawMessage `json:"parameters"`
}

// WireTool converts the spec to the Chat API's tool format.
func (s Spec) WireTool() cohere.Tool {
	return cohere.NewTool(s.Name, s.Description, s.Parameters)
}

// Tool is a function the model can invoke.
// Implementations must be safe for concurrent use.
type Tool interface {
	// Spec returns the tool's definition.
	Spec() Spec

	// Call executes the tool with JSON-encoded arguments.
	// The returned value is serialized to JSON and handed back to the
	// model as the tool result.
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// SchemaFor derives a JSON Schema for T's fields, for use as Spec.Parameters.
// Field names come from json tags; descriptions and constraints come from
// jsonschema tags.
func SchemaFor[T any]() json.RawMessage {
	r := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	var v T
	schema := r.Reflect(&v)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		// Reflect output always marshals; a failure here is a bug.
		panic("tool: marshaling schema: " + err.Error())
	}
	return data
}
