package assets

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PredictionResponseSchemaJSON is the JSON Schema every 2xx /predict body
// must satisfy.
//
//go:embed prediction_response.schema.json
var PredictionResponseSchemaJSON []byte

const predictionResponseURL = "prediction_response.schema.json"

// PredictionResponseSchema compiles the embedded schema.
func PredictionResponseSchema() (*jsonschema.Schema, error) {
	if len(PredictionResponseSchemaJSON) == 0 {
		return nil, fmt.Errorf("embedded %s is empty", predictionResponseURL)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(predictionResponseURL, bytes.NewReader(PredictionResponseSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(predictionResponseURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
