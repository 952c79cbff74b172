// Package parse decodes JSON payloads from AI endpoints with a repair
// fallback. Self-hosted and proxy endpoints are not always strict about the
// JSON they emit (single quotes, trailing commas, unquoted keys), so strict
// decoding is tried first and automatic repair second, before giving up with
// an error that embeds a preview of the offending payload.
package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/aiwire/internal/utils"
)

// previewLimit caps how much payload is embedded in decode errors.
const previewLimit = 300

// DecodeJSON unmarshals data into T, repairing the payload and retrying once
// when strict decoding fails.
func DecodeJSON[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err == nil {
		return &out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, fmt.Errorf("parse: payload is not valid JSON and could not be repaired: %w (payload: %s)",
			repairErr, utils.TruncateString(string(data), previewLimit))
	}

	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return nil, fmt.Errorf("parse: decoding repaired payload: %w (payload: %s)",
			err, utils.TruncateString(string(data), previewLimit))
	}

	return &out, nil
}
