package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
)

var (
	commentAuthor string
	commentBody   string
	commentRev    int
	commentText   string
	commentFrom   int
	commentTo     int
	commentJSON   bool
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage anchored comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add [note-id]",
	Short: "Anchor a comment to a note",
	Long: `Anchor a comment either to an explicit character range (--from/--to)
or to the unique occurrence of a quote (--text). The --rev flag must carry
the revision the note was read at; a mismatch means someone edited the note
in between and the request is rejected.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noteID := args[0]

		service, err := openService(margin.WithMustExist(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		c, err := service.AddComment(context.Background(), noteID, margin.CommentRequest{
			Author: commentAuthor,
			Body:   commentBody,
			Rev:    commentRev,
			From:   commentFrom,
			To:     commentTo,
			Text:   commentText,
		})
		if err != nil {
			fatal("Failed to add comment", err)
		}

		fmt.Printf("Comment %s anchored to [%d,%d) (%s).\n", c.ID, c.Anchor.From, c.Anchor.To, c.Status)
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list [note-id]",
	Short: "List the comments of a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noteID := args[0]

		service, err := openService(margin.WithMustExist(true), margin.WithReadOnly(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		note, err := service.GetNote(context.Background(), noteID)
		if err != nil {
			fatal("Failed to read note", err)
		}

		if commentJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note.Comments); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, c := range note.Comments {
			fmt.Printf("%s [%d,%d) %-8s %s: %s\n",
				c.ID, c.Anchor.From, c.Anchor.To, c.Status, c.Author, c.Body)
		}
	},
}

var commentRemoveCmd = &cobra.Command{
	Use:   "remove [note-id] [comment-id]",
	Short: "Remove a comment from a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		noteID, commentID := args[0], args[1]

		service, err := openService(margin.WithMustExist(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		if err := service.RemoveComment(context.Background(), noteID, commentID); err != nil {
			fatal("Failed to remove comment", err)
		}

		fmt.Printf("Comment removed: %s\n", commentID)
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentRemoveCmd)

	commentAddCmd.Flags().StringVar(&commentAuthor, "author", "", "Comment author")
	commentAddCmd.Flags().StringVarP(&commentBody, "body", "b", "", "Comment body")
	commentAddCmd.Flags().IntVar(&commentRev, "rev", 0, "Revision the note was read at")
	commentAddCmd.Flags().StringVar(&commentText, "text", "", "Quote to anchor to (must occur exactly once)")
	commentAddCmd.Flags().IntVar(&commentFrom, "from", 0, "Range start (rune offset, inclusive)")
	commentAddCmd.Flags().IntVar(&commentTo, "to", 0, "Range end (rune offset, exclusive)")

	commentListCmd.Flags().BoolVar(&commentJSON, "json", false, "Output in JSON format")
}
