package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/margin"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a margin vault",
	Long:  `Initialize a new Margin vault in the current directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		uri := cwd
		if adapter == "sqlite" {
			uri = dbPath
		}

		_, err = margin.Init(uri,
			margin.WithAdapter(adapter),
			margin.WithAutoInit(true),
			margin.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized empty Margin vault in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
