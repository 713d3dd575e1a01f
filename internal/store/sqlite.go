package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS interactions (
        id TEXT PRIMARY KEY, -- UUID
        message TEXT NOT NULL,
        intent TEXT NOT NULL,
        sentiment TEXT NOT NULL,
        source TEXT NOT NULL,
        confidence REAL NOT NULL,
        latency_ms INTEGER NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions (created_at);
    `
	_, err := s.db.Exec(schema)
	return err
}

// RecordInteraction inserts one pipeline outcome. The caller treats failures
// as best-effort: a lost log row must never affect the chat response.
func (s *SQLiteStore) RecordInteraction(interaction *Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO interactions (id, message, intent, sentiment, source, confidence, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		interaction.ID, interaction.Message, interaction.Intent, interaction.Sentiment,
		interaction.Source, interaction.Confidence, interaction.LatencyMS, interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

// RecentInteractions returns up to limit interactions, newest first.
func (s *SQLiteStore) RecentInteractions(limit int) ([]Interaction, error) {
	rows, err := s.db.Query(
		"SELECT id, message, intent, sentiment, source, confidence, latency_ms, created_at FROM interactions ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var interaction Interaction
		if err := rows.Scan(
			&interaction.ID, &interaction.Message, &interaction.Intent, &interaction.Sentiment,
			&interaction.Source, &interaction.Confidence, &interaction.LatencyMS, &interaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return interactions, nil
}
