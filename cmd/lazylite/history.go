package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazylite/internal/config"
	"github.com/rebeliceyang/lazylite/internal/history"
)

var (
	historySearch string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recorded commands, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var entries []history.Entry
		if historySearch != "" {
			entries, err = store.Search(cmd.Context(), historySearch, historyLimit)
		} else {
			entries, err = store.GetRecent(cmd.Context(), historyLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		printHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "only show commands containing this text")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func printHistory(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "failed: " + e.ErrorMessage
		}
		_, _ = fmt.Fprintf(w, "%s  %-5s  %s  %s  (%s, %s)\n",
			e.ExecutedAt.Format(time.DateTime),
			e.Kind,
			e.Target,
			strings.Join(strings.Fields(e.Query), " "),
			e.Duration,
			status,
		)
	}
}
