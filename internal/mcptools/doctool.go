package mcptools

import (
	"github.com/dusk-indust/doctree/internal/reflect"
	"github.com/dusk-indust/doctree/internal/store"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ConvertProjectInput is the input for the convert_project MCP tool.
type ConvertProjectInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the project to convert"`
	Language    string   `json:"language,omitempty" jsonschema:"source language: typescript, go, python, rust (default: typescript)"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude (e.g. vendor, node_modules)"`
}

// ConvertProjectOutput is the result of the convert_project MCP tool.
type ConvertProjectOutput struct {
	Stats       store.ProjectStats `json:"stats"`
	Diagnostics int                `json:"diagnostics"`
}

// QueryReflectionsInput is the input for the query_reflections MCP tool.
type QueryReflectionsInput struct {
	Query string `json:"query" jsonschema:"search query for reflection names (substring match)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by reflection kind: module, class, interface, enum, function, method, property, variable, type alias"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryReflectionsOutput is the result of the query_reflections MCP tool.
type QueryReflectionsOutput struct {
	Reflections []store.Record `json:"reflections"`
	Total       int            `json:"total"`
}

// GetReflectionInput is the input for the get_reflection MCP tool.
type GetReflectionInput struct {
	ID int `json:"id" jsonschema:"reflection id"`
}

// GetReflectionOutput is the result of the get_reflection MCP tool.
type GetReflectionOutput struct {
	Reflection *store.Record  `json:"reflection,omitempty"`
	Children   []store.Record `json:"children,omitempty"`
}

// GetHierarchyInput is the input for the get_hierarchy MCP tool.
type GetHierarchyInput struct {
	ID       int `json:"id" jsonschema:"reflection id to walk heritage from"`
	MaxDepth int `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetHierarchyOutput is the result of the get_hierarchy MCP tool.
type GetHierarchyOutput struct {
	Chains []store.HierarchyChain `json:"chains"`
}

// ProjectStatsInput is the input for the project_stats MCP tool.
type ProjectStatsInput struct{}

// ProjectStatsOutput is the result of the project_stats MCP tool.
type ProjectStatsOutput struct {
	Stats store.ProjectStats `json:"stats"`
}

// recordID converts a tool-facing integer id to the model type.
func recordID(id int) reflect.ID {
	return reflect.ID(id)
}
