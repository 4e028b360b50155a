package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// callableRecordType is the TypeScript type of a serialized callable
// catalog, matching what the language server declares for it.
const callableRecordType = "Record<string, { brief: string, parameters: { name: string, default: string | null }[] }>"

// RenderCallablesTS renders the three namespace catalogs as a TypeScript
// module exporting one const per namespace.
func RenderCallablesTS(filters, tests, globals *CallableCatalog) ([]byte, error) {
	var buf bytes.Buffer
	for _, ns := range []struct {
		name string
		cat  *CallableCatalog
	}{
		{"filters", filters},
		{"tests", tests},
		{"globals", globals},
	} {
		data, err := json.Marshal(ns.cat)
		if err != nil {
			return nil, fmt.Errorf("marshal %s catalog: %w", ns.name, err)
		}
		fmt.Fprintf(&buf, "export const %s: %s = %s\n", ns.name, callableRecordType, data)
	}
	return buf.Bytes(), nil
}

// RenderTypesTS renders the type catalog as a TypeScript module. TypeInfo is
// defined by the consuming language server; this side only produces
// conforming data.
func RenderTypesTS(cat *TypeCatalog) ([]byte, error) {
	data, err := json.Marshal(cat)
	if err != nil {
		return nil, fmt.Errorf("marshal type catalog: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("import type { TypeInfo } from \"./types\"\n\n")
	fmt.Fprintf(&buf, "export const BUILTIN_TYPES: Record<string, TypeInfo> = %s\n", data)
	return buf.Bytes(), nil
}

// RenderCallablesJSON renders the namespace catalogs as one indented JSON
// document, for consumers that want raw data instead of a TypeScript module.
func RenderCallablesJSON(filters, tests, globals *CallableCatalog) ([]byte, error) {
	doc := struct {
		Filters *CallableCatalog `json:"filters"`
		Tests   *CallableCatalog `json:"tests"`
		Globals *CallableCatalog `json:"globals"`
	}{filters, tests, globals}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal callable catalogs: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderTypesJSON renders the type catalog as indented JSON.
func RenderTypesJSON(cat *TypeCatalog) ([]byte, error) {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal type catalog: %w", err)
	}
	return append(data, '\n'), nil
}
