//go:build cgo

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/doctree/internal/reflect"
)

// KuzuStore implements the Store interface using KuzuDB as the backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases, so persisted reflection graphs survive across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Reflection(
		id INT64,
		name STRING,
		kind STRING,
		comment STRING,
		file STRING,
		line INT64,
		exported BOOLEAN,
		external BOOLEAN,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS CHILD_OF(FROM Reflection TO Reflection)`,
	`CREATE REL TABLE IF NOT EXISTS EXTENDS(FROM Reflection TO Reflection)`,
	`CREATE REL TABLE IF NOT EXISTS IMPLEMENTS(FROM Reflection TO Reflection)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddReflection inserts a Reflection node.
func (s *KuzuStore) AddReflection(_ context.Context, rec Record) error {
	return s.exec(
		`CREATE (r:Reflection {
			id: $id,
			name: $name,
			kind: $kind,
			comment: $comment,
			file: $file,
			line: $line,
			exported: $exported,
			external: $external
		})`,
		map[string]any{
			"id":       int64(rec.ID),
			"name":     rec.Name,
			"kind":     string(rec.Kind),
			"comment":  rec.Comment,
			"file":     rec.File,
			"line":     int64(rec.Line),
			"exported": rec.Exported,
			"external": rec.External,
		},
	)
}

// AddRelationship inserts a relationship edge between two reflections.
// The Cypher statement is chosen based on the RelKind.
func (s *KuzuStore) AddRelationship(_ context.Context, rel Relationship) error {
	cypher, err := relCypher(rel.Kind)
	if err != nil {
		return err
	}
	return s.exec(cypher, map[string]any{
		"src": int64(rel.SourceID),
		"dst": int64(rel.TargetID),
	})
}

// relCypher returns the MATCH-CREATE Cypher for the given relationship kind.
func relCypher(kind RelKind) (string, error) {
	switch kind {
	case RelChild:
		return `MATCH (a:Reflection {id: $src}), (b:Reflection {id: $dst})
				CREATE (a)-[:CHILD_OF]->(b)`, nil
	case RelExtends:
		return `MATCH (a:Reflection {id: $src}), (b:Reflection {id: $dst})
				CREATE (a)-[:EXTENDS]->(b)`, nil
	case RelImplements:
		return `MATCH (a:Reflection {id: $src}), (b:Reflection {id: $dst})
				CREATE (a)-[:IMPLEMENTS]->(b)`, nil
	default:
		return "", fmt.Errorf("kuzu: unsupported relationship kind: %s", kind)
	}
}

// ---------- Read operations ----------

const recordColumns = "r.id, r.name, r.kind, r.comment, r.file, r.line, r.exported, r.external"

// GetReflection retrieves a single Reflection node by id, or nil if not found.
func (s *KuzuStore) GetReflection(_ context.Context, id reflect.ID) (*Record, error) {
	rows, err := s.query(
		"MATCH (r:Reflection {id: $id}) RETURN "+recordColumns,
		map[string]any{"id": int64(id)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec := rowToRecord(rows[0])
	return &rec, nil
}

// QueryReflections returns reflections whose name contains the query string.
func (s *KuzuStore) QueryReflections(_ context.Context, queryStr string, limit int) ([]Record, error) {
	cypher := "MATCH (r:Reflection) WHERE r.name CONTAINS $q RETURN " + recordColumns
	params := map[string]any{"q": queryStr}
	if limit > 0 {
		cypher += " LIMIT $lim"
		params["lim"] = int64(limit)
	}
	rows, err := s.query(cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToRecord(r))
	}
	return out, nil
}

// Children returns the reflections whose CHILD_OF edge targets id.
func (s *KuzuStore) Children(_ context.Context, id reflect.ID) ([]Record, error) {
	rows, err := s.query(
		"MATCH (r:Reflection)-[:CHILD_OF]->(p:Reflection {id: $id}) RETURN "+recordColumns,
		map[string]any{"id": int64(id)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToRecord(r))
	}
	return out, nil
}

// ---------- Hierarchy ----------

// Hierarchy performs a BFS along EXTENDS and IMPLEMENTS edges from id, up
// to maxDepth hops. It returns one chain per reachable supertype.
func (s *KuzuStore) Hierarchy(_ context.Context, id reflect.ID, maxDepth int) ([]HierarchyChain, error) {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	type bfsEntry struct {
		path  []reflect.ID
		depth int
	}
	visited := map[reflect.ID]bool{id: true}
	queue := []bfsEntry{{path: []reflect.ID{id}, depth: 0}}
	var chains []HierarchyChain

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		tip := cur.path[len(cur.path)-1]
		supers, err := s.supertypes(tip)
		if err != nil {
			return nil, err
		}
		for _, super := range supers {
			if visited[super] {
				continue
			}
			visited[super] = true
			newPath := make([]reflect.ID, len(cur.path)+1)
			copy(newPath, cur.path)
			newPath[len(cur.path)] = super
			chains = append(chains, HierarchyChain{
				IDs:   newPath,
				Depth: cur.depth + 1,
			})
			queue = append(queue, bfsEntry{path: newPath, depth: cur.depth + 1})
		}
	}
	return chains, nil
}

// supertypes returns ids one heritage hop away from id.
func (s *KuzuStore) supertypes(id reflect.ID) ([]reflect.ID, error) {
	var out []reflect.ID
	for _, table := range []string{"EXTENDS", "IMPLEMENTS"} {
		cypher := fmt.Sprintf(
			"MATCH (a:Reflection {id: $id})-[:%s]->(b:Reflection) RETURN b.id", table)
		rows, err := s.query(cypher, map[string]any{"id": int64(id)})
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, reflect.ID(toInt(r[0])))
		}
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of the node table and all relationship tables.
func (s *KuzuStore) Stats(_ context.Context) (*ProjectStats, error) {
	reflections, err := s.countNodes()
	if err != nil {
		return nil, err
	}
	rels, err := s.countRelationships()
	if err != nil {
		return nil, err
	}
	return &ProjectStats{
		ReflectionCount:   reflections,
		RelationshipCount: rels,
	}, nil
}

func (s *KuzuStore) countNodes() (int, error) {
	rows, err := s.query("MATCH (r:Reflection) RETURN count(r)", nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

func (s *KuzuStore) countRelationships() (int, error) {
	tables := []string{"CHILD_OF", "EXTENDS", "IMPLEMENTS"}
	total := 0
	for _, t := range tables {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// rowToRecord converts an 8-column result row into a Record.
// Column order matches recordColumns.
func rowToRecord(r []any) Record {
	return Record{
		ID:       reflect.ID(toInt(r[0])),
		Name:     toString(r[1]),
		Kind:     reflect.Kind(toString(r[2])),
		Comment:  toString(r[3]),
		File:     toString(r[4]),
		Line:     toInt(r[5]),
		Exported: toBool(r[6]),
		External: toBool(r[7]),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
