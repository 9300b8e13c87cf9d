package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeID      string
	writeContent string
	writeStdin   bool
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a note",
	Long: `Create or update a note with the given ID and content. Existing
comments are remapped across the edit; anchors that cannot be kept
trustworthy are downgraded to stale or detached.`,
	Run: func(cmd *cobra.Command, args []string) {
		if writeID == "" {
			fmt.Println("Error: --id is required")
			cmd.Usage()
			os.Exit(1)
		}

		content := writeContent
		if writeStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}

		service, err := openService()
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		n, err := service.SaveNote(context.Background(), writeID, content, nil)
		if err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Printf("Note '%s' saved at revision %d.\n", n.ID, n.CommentRev)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeID, "id", "", "Note ID (filename)")
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Note content")
	writeCmd.Flags().BoolVar(&writeStdin, "stdin", false, "Read content from stdin")
	writeCmd.MarkFlagRequired("id")
}
