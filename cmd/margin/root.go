package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
	"github.com/aretw0/margin/pkg/core"
)

var (
	verbose bool
	adapter string
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "margin",
	Short: "Anchored comments for plain-text notes",
	Long: `Margin stores notes together with comments anchored to character
ranges of their content. Edits to a note remap every anchor, so the
comments keep pointing at the text they were written about.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// vaultURI resolves the adapter-specific URI: the vault root directory for
// 'fs', the database file for 'sqlite'.
func vaultURI() (string, error) {
	if adapter == "sqlite" {
		return dbPath, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := margin.FindVaultRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// openService wires a service against the current vault.
func openService(extra ...margin.Option) (*core.Service, error) {
	uri, err := vaultURI()
	if err != nil {
		return nil, err
	}

	opts := []margin.Option{
		margin.WithAdapter(adapter),
		margin.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	return margin.New(uri, opts...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs or sqlite)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "margin.db", "Database file (sqlite adapter only)")
}
