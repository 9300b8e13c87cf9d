package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
	marginlc "github.com/aretw0/margin/pkg/adapters/lifecycle"
	"github.com/aretw0/margin/pkg/core"
)

var (
	watchPattern string
	watchTypes   []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault for note and comment changes",
	Long: `Watch streams change events for the vault until interrupted.
Comment sidecar changes surface as MODIFY events of the owning note.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(margin.WithMustExist(true))
		if err != nil {
			fatal("Failed to initialize margin", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		events, err := service.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		// Bridge the typed channel into the generic lifecycle event stream,
		// dropping event types the user did not ask for.
		types := make([]core.EventType, 0, len(watchTypes))
		for _, s := range watchTypes {
			types = append(types, core.EventType(strings.ToUpper(s)))
		}
		source := marginlc.NewSource(events, types...)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Println("Watching for changes (Ctrl+C to stop)...")
		for e := range source.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "*", "Glob pattern of notes to watch")
	watchCmd.Flags().StringSliceVar(&watchTypes, "events", nil, "Event types to show (CREATE, MODIFY, DELETE); default all")
}
