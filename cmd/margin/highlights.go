package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
)

var highlightsJSON bool

var highlightsCmd = &cobra.Command{
	Use:   "highlights [note-id]",
	Short: "Show the merged highlight ranges of a note",
	Long: `Resolve every attached and stale comment of a note into character
ranges, merged so overlapping comments render as one span.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noteID := args[0]

		service, err := openService(margin.WithMustExist(true), margin.WithReadOnly(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		ranges, err := service.Highlights(context.Background(), noteID)
		if err != nil {
			fatal("Failed to resolve highlights", err)
		}

		if highlightsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(ranges); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, r := range ranges {
			fmt.Printf("[%d,%d)\n", r.From, r.To)
		}
	},
}

func init() {
	rootCmd.AddCommand(highlightsCmd)
	highlightsCmd.Flags().BoolVar(&highlightsJSON, "json", false, "Output in JSON format")
}
