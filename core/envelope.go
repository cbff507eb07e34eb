package core

import (
	"bytes"
	"encoding/json"
)

// The backend does not return list responses in one consistent shape.
// Depending on the endpoint (and sometimes on the deployment) a listing is
// a bare array, an object with a well-known array property, or an object
// where the array hides under some other key. ExtractList resolves that,
// deterministically:
//
//  1. a bare array is returned as-is,
//  2. otherwise the first preferred key (in the given order) whose value is
//     an array wins,
//  3. otherwise the first array-valued property in document order wins,
//  4. otherwise nil.
//
// It is total: malformed or empty input yields nil, never an error.
func ExtractList(raw json.RawMessage, preferred ...string) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		if json.Valid(trimmed) {
			return trimmed
		}
		return nil
	}
	if trimmed[0] != '{' {
		return nil
	}

	// Objects must be scanned token by token: decoding into a map would
	// lose the property order that rule 3 depends on.
	type slot struct {
		key   string
		value json.RawMessage
	}
	var arrays []slot

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
			arrays = append(arrays, slot{key: key, value: v})
		}
	}

	for _, want := range preferred {
		for _, s := range arrays {
			if s.key == want {
				return s.value
			}
		}
	}
	if len(arrays) > 0 {
		return arrays[0].value
	}
	return nil
}

// NormalizeDocuments projects an arbitrary list-response payload onto an
// ordered document slice. Well-known wrapper keys are "documents" and
// "data"; anything else falls back to the first array-valued property.
// No input shape produces an error; unusable payloads yield an empty slice.
func NormalizeDocuments(raw json.RawMessage) []Document {
	list := ExtractList(raw, "documents", "data")
	if list == nil {
		return []Document{}
	}
	var docs []Document
	if err := json.Unmarshal(list, &docs); err != nil {
		return []Document{}
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs
}
