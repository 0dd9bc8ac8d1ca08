// sqlite.go is the durable index store: the same append-only contract as
// MemoryStore, spilled to a SQLite file so the index survives restarts.
package indexstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements ports.IndexStore backed by a SQLite file.
// Rows are insert-only; rowid order is ingestion order.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the index database under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "index.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// initSchema creates the records table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		metadata TEXT NOT NULL,
		source TEXT NOT NULL,
		embedding BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts one record at the end of the log.
func (s *SQLiteStore) Append(ctx context.Context, rec entities.IndexableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	embeddingJSON, err := json.Marshal(rec.Embedding)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (text, metadata, source, embedding)
		VALUES (?, ?, ?, ?)
	`, rec.Text, rec.Metadata, string(rec.Source), embeddingJSON)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Snapshot reads all records in ingestion order. Each row was written by a
// single committed insert, so no partial record is ever visible.
func (s *SQLiteStore) Snapshot(ctx context.Context) ([]entities.IndexableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, metadata, source, embedding FROM records ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []entities.IndexableRecord
	for rows.Next() {
		var rec entities.IndexableRecord
		var source string
		var embeddingJSON []byte

		if err := rows.Scan(&rec.Text, &rec.Metadata, &source, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal(embeddingJSON, &rec.Embedding); err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}
		rec.Source = entities.Source(source)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Len reports the current number of indexed records.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
