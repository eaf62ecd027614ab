// Package mcptools exposes the documentation engine over the Model Context
// Protocol: a conversion tool that populates the reflection store, plus
// query tools over the stored graph.
package mcptools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/plugins"
	"github.com/dusk-indust/doctree/internal/reflect"
	"github.com/dusk-indust/doctree/internal/store"
)

// DocService holds the reflection store and converter options used by the
// MCP tool handlers.
type DocService struct {
	store store.Store
	opts  converter.Options
	log   *zap.Logger
}

// NewDocService creates a DocService over the given store.
func NewDocService(s store.Store, opts converter.Options, log *zap.Logger) *DocService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocService{store: s, opts: opts, log: log}
}

// ConvertProject converts a project directory and persists the resulting
// reflection graph into the store. Returns graph statistics.
func (s *DocService) ConvertProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertProjectInput,
) (*mcp.CallToolResult, ConvertProjectOutput, error) {
	if input.RepoPath == "" {
		return nil, ConvertProjectOutput{}, fmt.Errorf("repoPath is required")
	}

	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, ConvertProjectOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	opts := s.opts
	if input.Language != "" {
		opts.Language = frontend.Language(strings.ToLower(input.Language))
	}
	spec, err := frontend.SpecFor(opts.Language)
	if err != nil {
		return nil, ConvertProjectOutput{}, err
	}

	excludeSet := make(map[string]bool, len(input.ExcludeDirs))
	for _, d := range input.ExcludeDirs {
		excludeSet[d] = true
	}

	var files []string
	walkErr := filepath.WalkDir(input.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || excludeSet[name] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range spec.Extensions {
			if e == ext {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("walk: %w", walkErr)
	}

	conv := converter.New(opts, frontend.NewLocalHost(), s.log)
	if err := plugins.RegisterDefaults(conv); err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("register plugins: %w", err)
	}

	result, err := conv.Convert(files)
	if err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("convert: %w", err)
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("init schema: %w", err)
	}
	if err := store.Persist(ctx, s.store, result.Project); err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("persist: %w", err)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, ConvertProjectOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, ConvertProjectOutput{
		Stats:       *stats,
		Diagnostics: len(result.Diagnostics),
	}, nil
}

// QueryReflections searches for reflections by name substring match.
func (s *DocService) QueryReflections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryReflectionsInput,
) (*mcp.CallToolResult, QueryReflectionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	// The kind filter has to run before the limit, or a filtered page
	// could come back short while more matches exist.
	queryLimit := limit
	if input.Kind != "" {
		queryLimit = 0
	}

	records, err := s.store.QueryReflections(ctx, input.Query, queryLimit)
	if err != nil {
		return nil, QueryReflectionsOutput{}, fmt.Errorf("query reflections: %w", err)
	}

	if input.Kind != "" {
		kind := reflect.Kind(strings.ToLower(input.Kind))
		filtered := records[:0]
		for _, rec := range records {
			if rec.Kind == kind {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
		if len(records) > limit {
			records = records[:limit]
		}
	}

	return nil, QueryReflectionsOutput{
		Reflections: records,
		Total:       len(records),
	}, nil
}

// GetReflection fetches one reflection and its direct children by id.
func (s *DocService) GetReflection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReflectionInput,
) (*mcp.CallToolResult, GetReflectionOutput, error) {
	rec, err := s.store.GetReflection(ctx, recordID(input.ID))
	if err != nil {
		return nil, GetReflectionOutput{}, fmt.Errorf("get reflection: %w", err)
	}
	if rec == nil {
		return nil, GetReflectionOutput{}, fmt.Errorf("no reflection with id %d", input.ID)
	}

	children, err := s.store.Children(ctx, recordID(input.ID))
	if err != nil {
		return nil, GetReflectionOutput{}, fmt.Errorf("get children: %w", err)
	}

	return nil, GetReflectionOutput{
		Reflection: rec,
		Children:   children,
	}, nil
}

// GetHierarchy walks heritage relationships upward from a reflection.
func (s *DocService) GetHierarchy(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetHierarchyInput,
) (*mcp.CallToolResult, GetHierarchyOutput, error) {
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	chains, err := s.store.Hierarchy(ctx, recordID(input.ID), maxDepth)
	if err != nil {
		return nil, GetHierarchyOutput{}, fmt.Errorf("get hierarchy: %w", err)
	}

	return nil, GetHierarchyOutput{Chains: chains}, nil
}

// ProjectStats returns counts over the stored reflection graph.
func (s *DocService) ProjectStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProjectStatsInput,
) (*mcp.CallToolResult, ProjectStatsOutput, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, ProjectStatsOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, ProjectStatsOutput{Stats: *stats}, nil
}
