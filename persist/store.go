package persist

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"github.com/texelation/multisplit/model"
)

// SQLiteStore is an optional alternative to a single JSON file on disk: a
// queryable table of named layout snapshots, for hosts that want to offer
// "save layout as..." / "open layout..." rather than one implicit session
// file. Grounded on the teacher's file-backed storage_service.go shape
// (scoped, lazily-flushed persistence keyed by name) but backed by sqlite
// instead of one JSON file per scope, since a single file holding many
// named layouts benefits from indexed lookup by name or revision.
type SQLiteStore struct {
	db *sql.DB
}

// LayoutInfo describes one saved snapshot without loading its tree.
type LayoutInfo struct {
	Name     string
	Revision uint64
	SavedAt  time.Time
	SizeHint int
}

// OpenSQLiteStore opens (creating if absent) a sqlite-backed snapshot store
// at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open sqlite store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS layouts (
	name      TEXT PRIMARY KEY,
	revision  INTEGER NOT NULL,
	data      BLOB NOT NULL,
	saved_at  INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Save encodes tree per the §4.6 schema and upserts it under name.
func (s *SQLiteStore) Save(name string, tree *model.Tree, includeFocus bool) error {
	data, err := Encode(tree, includeFocus)
	if err != nil {
		return fmt.Errorf("persist: encode layout %q: %w", name, err)
	}
	const upsert = `
INSERT INTO layouts (name, revision, data, saved_at) VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET revision = excluded.revision, data = excluded.data, saved_at = excluded.saved_at;`
	if _, err := s.db.Exec(upsert, name, tree.Revision, data, time.Now().Unix()); err != nil {
		return fmt.Errorf("persist: save layout %q: %w", name, err)
	}
	return nil
}

// Load decodes the snapshot saved under name.
func (s *SQLiteStore) Load(name string, epsilon float64) (*model.Tree, error) {
	var data []byte
	row := s.db.QueryRow(`SELECT data FROM layouts WHERE name = ?`, name)
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("persist: layout %q not found", name)
		}
		return nil, fmt.Errorf("persist: load layout %q: %w", name, err)
	}
	return Decode(data, epsilon)
}

// Delete removes the snapshot saved under name, if present.
func (s *SQLiteStore) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM layouts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("persist: delete layout %q: %w", name, err)
	}
	return nil
}

// List returns every saved layout's metadata, most recently saved first.
func (s *SQLiteStore) List() ([]LayoutInfo, error) {
	rows, err := s.db.Query(`SELECT name, revision, saved_at, length(data) FROM layouts ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("persist: list layouts: %w", err)
	}
	defer rows.Close()

	var infos []LayoutInfo
	for rows.Next() {
		var info LayoutInfo
		var savedAt int64
		if err := rows.Scan(&info.Name, &info.Revision, &savedAt, &info.SizeHint); err != nil {
			return nil, fmt.Errorf("persist: scan layout row: %w", err)
		}
		info.SavedAt = time.Unix(savedAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Stats renders a human-readable summary line per saved layout — name,
// revision, size, and age — for a host's diagnostic output.
func (s *SQLiteStore) Stats() ([]string, error) {
	infos, err := s.List()
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(infos))
	for _, info := range infos {
		lines = append(lines, fmt.Sprintf("%s  rev=%d  %s  saved %s",
			info.Name, info.Revision, humanize.Bytes(uint64(info.SizeHint)), humanize.Time(info.SavedAt)))
	}
	return lines, nil
}
