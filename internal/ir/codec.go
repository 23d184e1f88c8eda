package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaError describes a structural violation in serialized IR. Field is a
// JSON-path-like locator ("[2].c4_level") so callers can point at the
// offending element.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("ir schema: %s", e.Msg)
	}
	return fmt.Sprintf("ir schema: %s: %s", e.Field, e.Msg)
}

func schemaErrf(field, format string, args ...any) *SchemaError {
	return &SchemaError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Encode serializes docs to the JSON wire format. The caller is responsible
// for ordering; Decode(Encode(docs)) round-trips element-wise. Nil catalogs
// encode as empty arrays: the wire contract has no null collections.
func Encode(docs []ModuleDoc) ([]byte, error) {
	out := make([]ModuleDoc, len(docs))
	copy(out, docs)
	for i := range out {
		if out[i].Relationships == nil {
			out[i].Relationships = []Relationship{}
		}
		if out[i].Files == nil {
			out[i].Files = []FileEntry{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding IR: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode validates a serialized payload against the wire contract and
// deserializes it. Malformed or non-conforming input yields a *SchemaError;
// it is never silently repaired.
func Decode(data []byte) ([]ModuleDoc, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var docs []ModuleDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, schemaErrf("", "%v", err)
	}
	return docs, nil
}

// enum token sets for structural validation.
var (
	c4Tokens      = map[string]bool{"container": true, "component": true, "unknown": true}
	statusTokens  = map[string]bool{"planned": true, "verified": true}
	healthTokens  = map[string]bool{"planned": true, "active": true, "stable": true}
	moduleStrings = []string{"module_path", "content", "source_file", "pattern", "description"}
	fileStrings   = []string{"name", "pattern", "purpose"}
	relStrings    = []string{"target", "label", "protocol"}
)

// Validate checks that a serialized payload conforms to the ModuleDoc[]
// schema: an array of objects, required fields present with the right
// primitive shapes, enum fields restricted to recognized tokens. It is
// structural only and does not resolve cross-references between modules.
func Validate(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return schemaErrf("", "payload must be a JSON array of module objects")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return schemaErrf("", "payload must be a JSON array of module objects")
	}

	for i, elem := range elems {
		at := fmt.Sprintf("[%d]", i)

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil {
			return schemaErrf(at, "element must be an object")
		}

		for _, field := range moduleStrings {
			if err := wantString(obj, at, field); err != nil {
				return err
			}
		}
		if str, _ := asString(obj["module_path"]); str == "" {
			return schemaErrf(at+".module_path", "must be non-empty")
		}

		if err := wantToken(obj, at, "c4_level", c4Tokens); err != nil {
			return err
		}
		if err := wantToken(obj, at, "pattern_status", statusTokens); err != nil {
			return err
		}
		if raw, ok := obj["parent_container"]; ok && !isNull(raw) {
			if _, ok := asString(raw); !ok {
				return schemaErrf(at+".parent_container", "must be a string")
			}
		}

		rels, err := wantArray(obj, at, "relationships")
		if err != nil {
			return err
		}
		for j, rel := range rels {
			relAt := fmt.Sprintf("%s.relationships[%d]", at, j)
			var relObj map[string]json.RawMessage
			if err := json.Unmarshal(rel, &relObj); err != nil {
				return schemaErrf(relAt, "element must be an object")
			}
			for _, field := range relStrings {
				if err := wantString(relObj, relAt, field); err != nil {
					return err
				}
			}
		}

		files, err := wantArray(obj, at, "files")
		if err != nil {
			return err
		}
		for j, file := range files {
			fileAt := fmt.Sprintf("%s.files[%d]", at, j)
			var fileObj map[string]json.RawMessage
			if err := json.Unmarshal(file, &fileObj); err != nil {
				return schemaErrf(fileAt, "element must be an object")
			}
			for _, field := range fileStrings {
				if err := wantString(fileObj, fileAt, field); err != nil {
					return err
				}
			}
			if err := wantToken(fileObj, fileAt, "pattern_status", statusTokens); err != nil {
				return err
			}
			if err := wantToken(fileObj, fileAt, "health", healthTokens); err != nil {
				return err
			}
		}
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func wantString(obj map[string]json.RawMessage, at, field string) error {
	raw, ok := obj[field]
	if !ok {
		return schemaErrf(at+"."+field, "required field missing")
	}
	if _, ok := asString(raw); !ok {
		return schemaErrf(at+"."+field, "must be a string")
	}
	return nil
}

func wantToken(obj map[string]json.RawMessage, at, field string, tokens map[string]bool) error {
	raw, ok := obj[field]
	if !ok {
		return schemaErrf(at+"."+field, "required field missing")
	}
	str, ok := asString(raw)
	if !ok {
		return schemaErrf(at+"."+field, "must be a string enum token")
	}
	if !tokens[str] {
		return schemaErrf(at+"."+field, "unrecognized token %q", str)
	}
	return nil
}

func wantArray(obj map[string]json.RawMessage, at, field string) ([]json.RawMessage, error) {
	raw, ok := obj[field]
	if !ok {
		return nil, schemaErrf(at+"."+field, "required field missing")
	}
	// Unmarshal of JSON null into a slice is a silent no-op.
	if isNull(raw) {
		return nil, schemaErrf(at+"."+field, "must be an array")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, schemaErrf(at+"."+field, "must be an array")
	}
	return elems, nil
}
