package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeModelJSON unmarshals JSON produced by a language model into v,
// repairing the common damage first (markdown fences, single quotes,
// trailing commas, unclosed brackets). Models are unreliable JSON emitters;
// never feed their output to encoding/json directly.
func DecodeModelJSON(raw string, v interface{}) error {
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return fmt.Errorf("unrepairable model output: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("repaired output still failed to decode: %w", err)
	}
	return nil
}

// DecodeHjson decodes an Hjson document into v. Business-model files are
// written by hand, so the input format allows comments, unquoted keys and
// optional commas; internally everything goes through standard JSON.
func DecodeHjson(data []byte, v interface{}) error {
	var intermediate interface{}
	if err := hjson.Unmarshal(data, &intermediate); err != nil {
		return fmt.Errorf("invalid hjson: %w", err)
	}
	normalized, err := json.Marshal(intermediate)
	if err != nil {
		return fmt.Errorf("failed to normalize hjson: %w", err)
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		return fmt.Errorf("hjson did not match target shape: %w", err)
	}
	return nil
}
