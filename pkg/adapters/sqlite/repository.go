// Package sqlite provides a SQLite-backed implementation of core.Repository.
// Notes and their anchored comments live in two tables; a note and its
// comment set are always written in one transaction, so readers never see
// offsets from one revision paired with content from another.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/margin/pkg/anchor"
	"github.com/aretw0/margin/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id          TEXT PRIMARY KEY,
    metadata    TEXT NOT NULL DEFAULT '{}',
    content     TEXT NOT NULL,
    comment_rev INTEGER NOT NULL DEFAULT 0,
    updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
    id              TEXT PRIMARY KEY,
    note_id         TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    ordinal         INTEGER NOT NULL,
    author          TEXT,
    created_at      INTEGER NOT NULL,
    body            TEXT NOT NULL,
    status          TEXT NOT NULL,
    anchor_from     INTEGER NOT NULL,
    anchor_to       INTEGER NOT NULL,
    anchor_rev      INTEGER NOT NULL,
    start_affinity  TEXT NOT NULL,
    end_affinity    TEXT NOT NULL,
    quote           TEXT NOT NULL DEFAULT '',
    quote_hash      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_comments_note ON comments(note_id, ordinal);
`

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path     string // path to the database file
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on a single SQLite database.
type Repository struct {
	config Config
	db     *sql.DB
}

// NewRepository creates a SQLite-backed repository. The database is opened
// lazily by Initialize.
func NewRepository(config Config) *Repository {
	return &Repository{config: config}
}

// Initialize opens or creates the database and applies the schema.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.db != nil {
		return nil
	}

	dir := filepath.Dir(r.config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", r.config.Path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	r.db = db
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) ready() error {
	if r.db == nil {
		return errors.New("repository not initialized")
	}
	return nil
}

// Save upserts the note row and rewrites its comment set in one transaction.
func (r *Repository) Save(ctx context.Context, n core.Note) error {
	if n.ID == "" {
		return fmt.Errorf("note has no ID")
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := r.ready(); err != nil {
		return err
	}

	metadataJSON, err := json.Marshal(n.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if n.Metadata == nil {
		metadataJSON = []byte("{}")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, metadata, content, comment_rev, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			metadata = excluded.metadata,
			content = excluded.content,
			comment_rev = excluded.comment_rev,
			updated_at = excluded.updated_at`,
		n.ID, string(metadataJSON), n.Content, n.CommentRev, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE note_id = ?`, n.ID); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO comments (id, note_id, ordinal, author, created_at, body, status,
			anchor_from, anchor_to, anchor_rev, start_affinity, end_affinity, quote, quote_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, c := range n.Comments {
		_, err := stmt.ExecContext(ctx,
			c.ID, n.ID, i, c.Author, c.CreatedAt.UnixNano(), c.Body, string(c.Status),
			c.Anchor.From, c.Anchor.To, c.Anchor.Rev,
			string(c.Anchor.Start), string(c.Anchor.End),
			c.Anchor.Quote, c.Anchor.QuoteHash,
		)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("saving note", "id", n.ID, "rev", n.CommentRev, "comments", len(n.Comments))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a note with its comments, normalized against the content.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	if err := r.ready(); err != nil {
		return core.Note{}, err
	}

	var metadataJSON string
	n := core.Note{ID: id}

	err := r.db.QueryRowContext(ctx, `
		SELECT metadata, content, comment_rev
		FROM notes WHERE id = ?`, id,
	).Scan(&metadataJSON, &n.Content, &n.CommentRev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Note{}, fmt.Errorf("note %s: %w", id, core.ErrNoteNotFound)
		}
		return core.Note{}, fmt.Errorf("get note: %w", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &n.Metadata); err != nil {
		return core.Note{}, fmt.Errorf("unmarshal metadata: %w", err)
	}

	comments, err := r.commentsFor(ctx, id, n.Content, n.CommentRev)
	if err != nil {
		return core.Note{}, err
	}
	n.Comments = comments
	return n, nil
}

func (r *Repository) commentsFor(ctx context.Context, noteID, content string, rev int) ([]anchor.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author, created_at, body, status,
			anchor_from, anchor_to, anchor_rev, start_affinity, end_affinity, quote, quote_hash
		FROM comments
		WHERE note_id = ?
		ORDER BY ordinal ASC`, noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []anchor.Comment
	for rows.Next() {
		var c anchor.Comment
		var createdNs int64
		var status, startAff, endAff string

		if err := rows.Scan(&c.ID, &c.Author, &createdNs, &c.Body, &status,
			&c.Anchor.From, &c.Anchor.To, &c.Anchor.Rev,
			&startAff, &endAff, &c.Anchor.Quote, &c.Anchor.QuoteHash); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}

		c.CreatedAt = time.Unix(0, createdNs).UTC()
		c.Status = anchor.Status(status)
		c.Anchor.Start = anchor.Affinity(startAff)
		c.Anchor.End = anchor.Affinity(endAff)

		comments = append(comments, anchor.Normalize(content, c, rev))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// List returns all notes with their comments, ordered by ID.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, metadata, content, comment_rev
		FROM notes
		ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		var metadataJSON string
		if err := rows.Scan(&n.ID, &metadataJSON, &n.Content, &n.CommentRev); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &n.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	for i := range notes {
		comments, err := r.commentsFor(ctx, notes[i].ID, notes[i].Content, notes[i].CommentRev)
		if err != nil {
			return nil, err
		}
		notes[i].Comments = comments
	}
	return notes, nil
}

// Delete removes a note; its comments go with it via the cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := r.ready(); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("note %s: %w", id, core.ErrNoteNotFound)
	}
	return nil
}
