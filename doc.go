// Package margin is the Composition Root for the Margin library.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Margin treats a collection of plain-text notes as an annotated database.
// Comments are anchored to character ranges of a note's content, and every
// edit to the content remaps those anchors so the comments keep pointing at
// the text they were written about. When a remap cannot keep an anchor
// trustworthy, the comment is downgraded to stale or detached rather than
// silently mispositioned.
//
// Features:
//
//   - **Hexagonal Architecture**: The anchoring engine and domain service are
//     isolated from persistence details.
//   - **Deterministic Remapping**: A single-region diff and affinity-driven
//     offset transformation keep anchor movement predictable.
//   - **Optimistic Concurrency**: A per-note revision counter rejects comments
//     created against outdated content.
//   - **Default Adapter (FS)**: Markdown notes with YAML frontmatter and a
//     comment sidecar per note.
//   - **SQLite Adapter**: The same semantics on a single database file.
//   - **Typed Retrieval**: Generic wrapper (`NewTypedService[T]`) for
//     type-safe metadata access.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := margin.New("./vault",
//		margin.WithAutoInit(true),
//		margin.WithLogger(logger),
//	)
//
//	// Save a note and anchor a comment to a quote
//	note, err := svc.SaveNote(ctx, "my-note", "hello world", nil)
//	c, err := svc.AddComment(ctx, "my-note", margin.CommentRequest{
//		Author: "ana",
//		Body:   "introduce yourself properly",
//		Text:   "hello",
//	})
package margin
