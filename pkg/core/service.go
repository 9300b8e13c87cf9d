package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/margin/pkg/anchor"
)

// Service handles the business logic for notes and their anchored
// comments. It is the boundary where the anchoring engine meets the store:
// every content write runs the remapper before persisting, and every new
// comment passes the optimistic revision check.
type Service struct {
	repo            Repository
	logger          *slog.Logger
	eventBufferSize int
	mu              sync.RWMutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEventBuffer sets the buffer size used when watching for events.
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		eventBufferSize: 16,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveNote persists new content for a note, remapping every anchored
// comment across the edit first. Creating a note starts it at revision 0
// with no comments. The returned Note is the complete persisted state.
func (s *Service) SaveNote(ctx context.Context, id string, content string, metadata Metadata) (Note, error) {
	if id == "" {
		return Note{}, errors.New("note ID cannot be empty")
	}

	prior, err := s.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNoteNotFound) {
		return Note{}, fmt.Errorf("failed to load prior state of %s: %w", id, err)
	}

	comments, nextRev := anchor.Remap(prior.Comments, prior.Content, content, prior.CommentRev)

	if s.logger != nil {
		s.logger.Debug("saving note",
			"id", id,
			"rev", nextRev,
			"comments", len(comments),
		)
	}

	n := Note{
		ID:         id,
		Metadata:   metadata,
		Content:    content,
		CommentRev: nextRev,
		Comments:   comments,
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// GetNote retrieves a note. Comments coming back from storage are
// normalized against the current content before they are trusted.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, errors.New("note ID cannot be empty")
	}

	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}

	for i, c := range n.Comments {
		n.Comments[i] = anchor.Normalize(n.Content, c, n.CommentRev)
	}
	return n, nil
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

// DeleteNote removes a note and all of its comments.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("note ID cannot be empty")
	}
	return s.repo.Delete(ctx, id)
}

// CommentRequest describes a comment to be added. The anchor comes from
// the explicit [From, To) range when To > From, otherwise from the unique
// occurrence of Text in the note content. Rev must be the CommentRev the
// client last observed.
type CommentRequest struct {
	Author string
	Body   string
	Rev    int

	From int
	To   int
	Text string
}

// AddComment anchors a new comment into a note.
//
// This is the optimistic-concurrency boundary: when the declared revision
// disagrees with the note's current CommentRev the request fails with
// ErrRevisionMismatch and nothing is mutated. The caller re-fetches and
// retries.
func (s *Service) AddComment(ctx context.Context, noteID string, req CommentRequest) (anchor.Comment, error) {
	if noteID == "" {
		return anchor.Comment{}, errors.New("note ID cannot be empty")
	}

	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return anchor.Comment{}, err
	}

	if req.Rev != n.CommentRev {
		return anchor.Comment{}, fmt.Errorf(
			"note %s is at revision %d, request declared %d: %w",
			noteID, n.CommentRev, req.Rev, ErrRevisionMismatch,
		)
	}

	var a anchor.Anchor
	if req.To > req.From {
		a, err = anchor.NewAnchorFromRange(n.Content, req.From, req.To, n.CommentRev)
	} else {
		a, err = anchor.NewAnchorFromText(n.Content, req.Text, n.CommentRev)
	}
	if err != nil {
		return anchor.Comment{}, err
	}

	c := anchor.Comment{
		ID:        uuid.NewString(),
		Author:    req.Author,
		CreatedAt: time.Now().UTC(),
		Body:      req.Body,
		Status:    anchor.StatusAttached,
		Anchor:    a,
	}

	n.Comments = append(n.Comments, c)
	if err := s.repo.Save(ctx, n); err != nil {
		return anchor.Comment{}, err
	}

	if s.logger != nil {
		s.logger.Debug("comment added", "note", noteID, "comment", c.ID, "rev", n.CommentRev)
	}
	return c, nil
}

// RemoveComment deletes one comment from a note by its ID.
func (s *Service) RemoveComment(ctx context.Context, noteID, commentID string) error {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range n.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("comment %s in note %s: %w", commentID, noteID, ErrCommentNotFound)
	}

	n.Comments = append(n.Comments[:idx], n.Comments[idx+1:]...)
	return s.repo.Save(ctx, n)
}

// Highlights resolves and merges the display ranges of all comments of a
// note. Detached comments resolve to nothing; overlapping and adjacent
// ranges are merged.
func (s *Service) Highlights(ctx context.Context, noteID string) ([]anchor.Range, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return anchor.HighlightRanges(n.Content, n.Comments), nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}
