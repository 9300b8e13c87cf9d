package margin_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/margin"
)

// Example_basic demonstrates how to initialize a vault, save a note, anchor
// a comment, and watch it survive an edit.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "margin-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	vault, err := margin.New(tmpDir, margin.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Save a note
	if _, err := vault.SaveNote(ctx, "hello-world", "hello world", nil); err != nil {
		log.Fatal(err)
	}

	// 2. Anchor a comment to a quote
	c, err := vault.AddComment(ctx, "hello-world", margin.CommentRequest{
		Author: "gopher",
		Body:   "a classic",
		Text:   "world",
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("anchored [%d,%d) %s\n", c.Anchor.From, c.Anchor.To, c.Status)

	// 3. Edit the note; the anchor follows the text
	if _, err := vault.SaveNote(ctx, "hello-world", "why hello world", nil); err != nil {
		log.Fatal(err)
	}

	note, err := vault.GetNote(ctx, "hello-world")
	if err != nil {
		log.Fatal(err)
	}
	moved := note.Comments[0]
	fmt.Printf("remapped [%d,%d) %s\n", moved.Anchor.From, moved.Anchor.To, moved.Status)
	// Output:
	// anchored [6,11) attached
	// remapped [10,15) attached
}

// ExampleNewTypedService demonstrates the generic wrapper for type-safe
// metadata access.
func ExampleNewTypedService() {
	tmpDir, err := os.MkdirTemp("", "margin-typed-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	type Article struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	store, err := margin.OpenTypedService[Article](tmpDir, margin.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	err = store.Save(ctx, &margin.NoteModel[Article]{
		ID:      "draft",
		Content: "the body",
		Data:    Article{Title: "On Margins", Tags: []string{"writing"}},
	})
	if err != nil {
		log.Fatal(err)
	}

	doc, err := store.Get(ctx, "draft")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc.Data.Title)
	// Output:
	// On Margins
}
