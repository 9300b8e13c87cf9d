package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/margin/pkg/anchor"
	"github.com/aretw0/margin/pkg/core"
)

// NoteModel wraps the raw core.Note with a typed Metadata field.
// It is the generic equivalent of core.Note.
type NoteModel[T any] struct {
	ID       string
	Content  string
	Data     T // The typed metadata
	Rev      int
	Comments []anchor.Comment
}

// TypedService wraps a core.Service to provide type-safe metadata access.
// It converts between raw maps and typed structs. Saves go through the
// service rather than the repository, so comment anchors are still remapped
// when typed code edits content.
type TypedService[T any] struct {
	svc *core.Service
}

// NewTyped creates a new type-safe service wrapper.
// T is the type of the struct you want to store in the note metadata.
func NewTyped[T any](svc *core.Service) *TypedService[T] {
	return &TypedService[T]{svc: svc}
}

// Save persists a typed note. The generic Data field is marshalled into
// the core.Note metadata map.
func (r *TypedService[T]) Save(ctx context.Context, n *NoteModel[T]) error {
	dataBytes, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal typed data: %w", err)
	}

	var metadata core.Metadata
	if err := json.Unmarshal(dataBytes, &metadata); err != nil {
		return fmt.Errorf("failed to convert typed data to map: %w", err)
	}

	saved, err := r.svc.SaveNote(ctx, n.ID, n.Content, metadata)
	if err != nil {
		return err
	}
	n.Rev = saved.CommentRev
	n.Comments = saved.Comments
	return nil
}

// Get retrieves a note and unmarshals its metadata into the typed struct.
func (r *TypedService[T]) Get(ctx context.Context, id string) (*NoteModel[T], error) {
	n, err := r.svc.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	return toModel[T](n)
}

// List returns all notes converted to the typed model.
func (r *TypedService[T]) List(ctx context.Context) ([]*NoteModel[T], error) {
	notes, err := r.svc.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*NoteModel[T], 0, len(notes))
	for _, n := range notes {
		m, err := toModel[T](n)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", n.ID, err)
		}
		result = append(result, m)
	}
	return result, nil
}

// Delete removes a note by ID.
func (r *TypedService[T]) Delete(ctx context.Context, id string) error {
	return r.svc.DeleteNote(ctx, id)
}

func toModel[T any](n core.Note) (*NoteModel[T], error) {
	// Marshal through JSON so tags defined on T are respected.
	dataBytes, err := json.Marshal(n.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to process note metadata: %w", err)
	}

	var data T
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into type %T: %w", new(T), err)
	}

	return &NoteModel[T]{
		ID:       n.ID,
		Content:  n.Content,
		Data:     data,
		Rev:      n.CommentRev,
		Comments: n.Comments,
	}, nil
}
