// Package export renders a converted reflection tree into output formats:
// a JSON document mirroring the tree, and a Mermaid class diagram of its
// type hierarchy.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// Document is the top-level JSON export structure.
type Document struct {
	Name        string              `json:"name"`
	GeneratedAt string              `json:"generatedAt"`
	Root        *reflect.Reflection `json:"root"`
}

// ModuleIndex lists the files a per-module export produced.
type ModuleIndex struct {
	Name        string   `json:"name"`
	GeneratedAt string   `json:"generatedAt"`
	Modules     []string `json:"modules"`
}

// JSON renders the whole project as one indented JSON document.
func JSON(project *reflect.Project) ([]byte, error) {
	doc := Document{
		Name:        project.Name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        &project.Reflection,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal project: %w", err)
	}
	return data, nil
}

// WriteJSON writes the project under dir according to the output mode:
// one project.json in single-file mode, or one file per top-level child
// plus an index.json in per-module mode.
func WriteJSON(dir string, project *reflect.Project, mode converter.OutputMode) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create output directory: %w", err)
	}

	if mode == converter.ModeSingleFile {
		data, err := JSON(project)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dir, "project.json"), data)
	}

	index := ModuleIndex{
		Name:        project.Name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// Module files are independent; write them concurrently. The index is
	// assembled up front so its order matches the tree.
	var g errgroup.Group
	g.SetLimit(4)
	for _, child := range project.Children {
		name := moduleFileName(child)
		index.Modules = append(index.Modules, name)

		g.Go(func() error {
			data, err := json.MarshalIndent(child, "", "  ")
			if err != nil {
				return fmt.Errorf("export: marshal %s: %w", child.Name, err)
			}
			return writeFile(filepath.Join(dir, name), data)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal index: %w", err)
	}
	return writeFile(filepath.Join(dir, "index.json"), data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// moduleFileName derives a stable filename from a reflection's name and id.
// The id disambiguates same-named top-level entities.
func moduleFileName(r *reflect.Reflection) string {
	name := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return c
		case c == '-' || c == '_' || c == '.':
			return c
		default:
			return '_'
		}
	}, r.Name)
	if name == "" {
		name = "module"
	}
	return fmt.Sprintf("%s.%d.json", name, r.ID)
}
