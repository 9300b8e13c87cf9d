package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/margin/pkg/anchor"
	"github.com/aretw0/margin/pkg/core"
)

// Repository implements core.Repository on the local filesystem.
//
// Each note is two files: the body at <id>.md (YAML frontmatter +
// Markdown) and, when the note carries comments or a non-zero revision, a
// sidecar at <id>.comments.yaml holding the revision counter and the
// anchored comments. Both are written atomically, sidecar first, so a
// crash between the two writes leaves the comments one revision behind the
// content at worst -- the next edit's remap normalizes them back.
type Repository struct {
	Path   string
	config Config
	cache  *cache

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	AutoInit  bool
	MustExist bool
	ReadOnly  bool
	SystemDir string // e.g. ".margin"
	Logger    *slog.Logger
	// ErrorHandler receives asynchronous watcher errors. Optional.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = ".margin"
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
	}
}

// Initialize performs the necessary setup for the repository.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(r.Path, r.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}
	return nil
}

// notePath resolves a note ID to its markdown file.
func (r *Repository) notePath(id string) string {
	return filepath.Join(r.Path, id+".md")
}

// sidecarPath resolves a note ID to its comment sidecar.
func (r *Repository) sidecarPath(id string) string {
	return filepath.Join(r.Path, id+SidecarSuffix)
}

// Save persists a note and its comment sidecar.
//
// Workflow:
//  1. Serialize the sidecar (revision + comments) and write it atomically,
//     or remove it when the note has no comment state worth keeping.
//  2. Serialize frontmatter + content and write the note atomically.
func (r *Repository) Save(ctx context.Context, n core.Note) error {
	if n.ID == "" {
		return fmt.Errorf("note has no ID")
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	fullPath := r.notePath(n.ID)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if len(n.Comments) == 0 && n.CommentRev == 0 {
		// No comment state: drop a stale sidecar if one exists.
		if err := os.Remove(r.sidecarPath(n.ID)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove sidecar: %w", err)
		}
	} else {
		data, err := serializeSidecar(sidecar{Rev: n.CommentRev, Comments: n.Comments})
		if err != nil {
			return fmt.Errorf("failed to serialize sidecar: %w", err)
		}
		if err := writeFileAtomic(r.sidecarPath(n.ID), data, 0644); err != nil {
			return fmt.Errorf("failed to write sidecar: %w", err)
		}
	}

	data, err := serializeNote(n.Metadata, n.Content)
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("writing note to disk", "id", n.ID, "path", fullPath, "rev", n.CommentRev)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Get retrieves a note, recombining body and sidecar. Comments read from
// disk pass through the engine's normalization so a hand-edited or
// truncated sidecar cannot smuggle malformed anchors into the domain.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	data, err := os.ReadFile(r.notePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return core.Note{}, fmt.Errorf("note %s: %w", id, core.ErrNoteNotFound)
		}
		return core.Note{}, err
	}

	metadata, content, err := parseNote(data)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to parse note %s: %w", id, err)
	}

	n := core.Note{
		ID:       id,
		Metadata: metadata,
		Content:  content,
	}

	scData, err := os.ReadFile(r.sidecarPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return n, nil
		}
		return core.Note{}, err
	}
	sc, err := parseSidecar(scData)
	if err != nil {
		return core.Note{}, fmt.Errorf("note %s: %w", id, err)
	}

	n.CommentRev = max(0, sc.Rev)
	n.Comments = make([]anchor.Comment, len(sc.Comments))
	for i, c := range sc.Comments {
		n.Comments[i] = anchor.Normalize(content, c, n.CommentRev)
	}
	return n, nil
}

// List scans the directory for all notes.
//
// Strategy:
//  1. Load the metadata index from the system directory.
//  2. Walk the tree, skipping the system dir and non-note files.
//  3. Cache hit (note + sidecar mtimes unchanged): emit the cached
//     metadata without re-reading content.
//  4. Cache miss: full Get, refresh the entry.
//  5. Prune vanished entries and persist the index.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note

	if err := r.cache.Load(); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Warn("failed to load cache", "error", err)
		}
	}
	seen := make(map[string]bool)

	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == r.config.SystemDir || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") || strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		id := strings.TrimSuffix(relPath, ".md")
		seen[relPath] = true

		mtime, err := r.effectiveMtime(path, id)
		if err != nil {
			return nil // racing delete; skip
		}

		if entry, hit := r.cache.Get(relPath, mtime); hit {
			n := core.Note{
				ID:         entry.ID,
				CommentRev: entry.Rev,
				Metadata:   core.Metadata{},
			}
			if entry.Title != "" {
				n.Metadata["title"] = entry.Title
			}
			if len(entry.Tags) > 0 {
				n.Metadata["tags"] = entry.Tags
			}
			// Content and comments are deliberately omitted on a cache hit:
			// List is for discovery, Get is for reading.
			notes = append(notes, n)
			return nil
		}

		n, err := r.Get(ctx, id)
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to parse note during list", "id", id, "error", err)
			}
			return nil // continue walking
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           id,
			Title:        metadataString(n.Metadata, "title"),
			Tags:         metadataStrings(n.Metadata, "tags"),
			Rev:          n.CommentRev,
			CommentCount: len(n.Comments),
			LastModified: mtime,
		})

		notes = append(notes, n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault dir: %w", err)
	}

	r.cache.Prune(seen)
	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to save cache", "error", err)
			}
		}
	}
	return notes, nil
}

// effectiveMtime is the later of the note's and its sidecar's mtimes, so
// comment-only changes invalidate the index entry too.
func (r *Repository) effectiveMtime(notePath, id string) (time.Time, error) {
	info, err := os.Stat(notePath)
	if err != nil {
		return time.Time{}, err
	}
	t := info.ModTime()
	if scInfo, err := os.Stat(r.sidecarPath(id)); err == nil && scInfo.ModTime().After(t) {
		t = scInfo.ModTime()
	}
	return t, nil
}

// Delete removes a note and its sidecar.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	fullPath := r.notePath(id)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("note %s: %w", id, core.ErrNoteNotFound)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("deleting note", "id", id, "path", fullPath)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to remove note: %w", err)
	}
	if err := os.Remove(r.sidecarPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove sidecar: %w", err)
	}
	return nil
}

func metadataString(m core.Metadata, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func metadataStrings(m core.Metadata, key string) []string {
	var out []string
	switch vals := m[key].(type) {
	case []any:
		for _, v := range vals {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = vals
	}
	return out
}
