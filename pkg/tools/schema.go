package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
)

// New builds a Spec whose parameter schema is reflected from In. Field
// descriptions come from `jsonschema_description` tags; fields without
// `omitempty` are required and must be present and non-null.
func New[In any](name, description string, fn func(context.Context, In) (string, error)) Spec {
	params := GenerateSchema[In]()
	required := requiredFields(params)
	return Spec{
		Name:        name,
		Description: description,
		Parameters:  params,
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			in, err := decodeArguments[In](raw, required)
			if err != nil {
				return "", err
			}
			return fn(ctx, in)
		},
	}
}

// decodeArguments decodes exactly one JSON object into In, rejecting null,
// trailing data, unknown fields and missing required fields.
func decodeArguments[In any](raw json.RawMessage, required []string) (In, error) {
	var in In
	fields, err := decodeSingle[map[string]json.RawMessage](raw, false)
	if err != nil {
		return in, err
	}
	if fields == nil {
		return in, fmt.Errorf("%w: arguments must be a JSON object", ErrInvalidArguments)
	}
	for _, key := range required {
		v, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return in, fmt.Errorf("%w: missing required field %q", ErrInvalidArguments, key)
		}
	}
	return decodeSingle[In](raw, true)
}

func decodeSingle[T any](raw json.RawMessage, strict bool) (T, error) {
	var out T
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return out, fmt.Errorf("%w: unexpected data after arguments", ErrInvalidArguments)
	}
	return out, nil
}

func requiredFields(schema map[string]any) []string {
	items, _ := schema["required"].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GenerateSchema derives an inline JSON object schema from T.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("tools: marshal schema: %v", err))
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("tools: unmarshal schema: %v", err))
	}
	delete(out, "$schema")
	delete(out, "$id")
	return out
}
