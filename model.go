package relay

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// JSONDecoder is the default Decoder.
type JSONDecoder struct{}

func (JSONDecoder) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// decodeModel decodes payload into M and verifies that every required
// JSON field of M is present, so a structurally valid but incomplete
// payload fails the decode stage instead of yielding a half-zero model.
func decodeModel[M any](dec Decoder, payload []byte) (M, error) {
	var m M
	if err := dec.Decode(payload, &m); err != nil {
		return m, err
	}
	if missing := missingFields[M](payload); len(missing) > 0 {
		return m, fmt.Errorf("model %T missing fields: %s", m, strings.Join(missing, ", "))
	}
	return m, nil
}

// missingFields lists required JSON keys absent from an object payload.
// A field is required unless its json tag carries omitempty or "-".
// Non-struct models and non-object payloads skip the check.
func missingFields[M any](payload []byte) []string {
	if reflect.TypeFor[M]().Kind() != reflect.Struct {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}

	metadata := sentinel.Inspect[M]()
	var missing []string
	for _, field := range metadata.Fields {
		name := jsonFieldName(field)
		if name == "-" || hasOmitempty(field) {
			continue
		}
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// jsonFieldName extracts the JSON key for a field from its metadata.
func jsonFieldName(field sentinel.FieldMetadata) string {
	if jsonTag, ok := field.Tags["json"]; ok {
		// Handle "name,omitempty" format
		parts := strings.Split(jsonTag, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
	}

	// Default to lowercase field name
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}

// hasOmitempty checks if the json tag contains omitempty.
func hasOmitempty(field sentinel.FieldMetadata) bool {
	if jsonTag, ok := field.Tags["json"]; ok {
		return strings.Contains(jsonTag, "omitempty")
	}
	return false
}
