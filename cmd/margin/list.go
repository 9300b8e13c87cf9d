package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
	"github.com/aretw0/margin/pkg/core"
)

var (
	listJSON  bool
	filterTag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(margin.WithMustExist(true), margin.WithReadOnly(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		notes, err := service.ListNotes(context.Background())
		if err != nil {
			fatal("Failed to list notes", err)
		}

		var filtered []core.Note
		for _, note := range notes {
			if filterTag != "" && !hasTag(note, filterTag) {
				continue
			}
			filtered = append(filtered, note)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			title := ""
			if t, ok := note.Metadata["title"].(string); ok {
				title = fmt.Sprintf("- %s", t)
			}
			fmt.Printf("%s %s\n", note.ID, title)
		}
	},
}

func hasTag(note core.Note, tag string) bool {
	// Tags come back as []interface{} from YAML, []string from code.
	switch t := note.Metadata["tags"].(type) {
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == tag {
				return true
			}
		}
	case []string:
		for _, s := range t {
			if s == tag {
				return true
			}
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
}
