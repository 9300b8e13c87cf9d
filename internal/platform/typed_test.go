package platform_test

import (
	"context"
	"testing"

	"github.com/aretw0/margin"
)

type article struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
	Draft bool     `json:"draft"`
}

func TestTypedService(t *testing.T) {
	ctx := context.Background()

	store, err := margin.OpenTypedService[article](t.TempDir(), margin.WithAutoInit(true))
	if err != nil {
		t.Fatalf("OpenTypedService failed: %v", err)
	}

	t.Run("Save And Get Round Trip", func(t *testing.T) {
		err := store.Save(ctx, &margin.NoteModel[article]{
			ID:      "essay",
			Content: "the long form",
			Data:    article{Title: "Essay", Tags: []string{"longform"}, Draft: true},
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Get(ctx, "essay")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Data.Title != "Essay" || !got.Data.Draft {
			t.Errorf("Typed data lost: %+v", got.Data)
		}
		if got.Content != "the long form" {
			t.Errorf("Content lost: %q", got.Content)
		}
	})

	t.Run("List Converts All Notes", func(t *testing.T) {
		if err := store.Save(ctx, &margin.NoteModel[article]{
			ID:      "second",
			Content: "more",
			Data:    article{Title: "Second"},
		}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		all, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) < 2 {
			t.Errorf("Expected at least 2 notes, got %d", len(all))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "second"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "second"); err == nil {
			t.Error("Expected Get to fail after delete")
		}
	})
}

// Typed saves go through the service, so existing comments are remapped
// when typed code rewrites the content.
func TestTypedServiceRemapsComments(t *testing.T) {
	ctx := context.Background()

	svc, err := margin.New(t.TempDir(), margin.WithAutoInit(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	typed := margin.NewTypedService[article](svc)

	if err := typed.Save(ctx, &margin.NoteModel[article]{
		ID:      "annotated",
		Content: "hello world",
		Data:    article{Title: "Annotated"},
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := svc.AddComment(ctx, "annotated", margin.CommentRequest{Text: "world"}); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	n := &margin.NoteModel[article]{
		ID:      "annotated",
		Content: "well hello world",
		Data:    article{Title: "Annotated"},
	}
	if err := typed.Save(ctx, n); err != nil {
		t.Fatalf("Edit save failed: %v", err)
	}

	if len(n.Comments) != 1 {
		t.Fatalf("Expected remapped comments on the model, got %d", len(n.Comments))
	}
	c := n.Comments[0]
	if c.Anchor.From != 11 || c.Anchor.To != 16 {
		t.Errorf("Expected anchor [11,16), got [%d,%d)", c.Anchor.From, c.Anchor.To)
	}
	if n.Rev != 1 {
		t.Errorf("Expected rev 1 after content edit, got %d", n.Rev)
	}
}
