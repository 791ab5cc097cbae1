package event

import "encoding/json"

// DecodePayload converts an event payload to T. Payloads published through
// the in-process MemoryBus are already the typed struct and pass through on
// a type assertion; payloads from serialized sources take the JSON
// round-trip instead.
func DecodePayload[T any](input interface{}) (T, error) {
	if typed, ok := input.(T); ok {
		return typed, nil
	}

	var decoded T
	raw, err := json.Marshal(input)
	if err != nil {
		return decoded, err
	}
	return decoded, json.Unmarshal(raw, &decoded)
}
