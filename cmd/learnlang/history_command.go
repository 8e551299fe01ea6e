package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"learnlang/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var filter history.ListFilter

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent submission attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(journal *history.Store) error {
				entries, err := journal.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No submissions recorded")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Operation", "Outcome", "Status", "Pack", "Vocab", "Subject", "Image", "Detail"},
					historyRows(entries),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVar(&filter.Limit, "limit", 20, "Maximum attempts to show (0 for all)")
	historyCmd.Flags().StringVar(&filter.PackID, "pack", "", "Only attempts for this pack")
	historyCmd.Flags().BoolVar(&filter.FailedOnly, "failed", false, "Only failed attempts")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(journal *history.Store) error {
				removed, err := journal.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d attempts\n", removed)
				return nil
			})
		},
	})
	return historyCmd
}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		status := "-"
		if entry.StatusCode != 0 {
			status = strconv.Itoa(entry.StatusCode)
		}
		image := entry.ImageSource
		if entry.ImageBytes > 0 {
			image = fmt.Sprintf("%s (%d B)", image, entry.ImageBytes)
		}
		rows = append(rows, []string{
			entry.CreatedAt.Local().Format(time.DateTime),
			string(entry.Operation),
			string(entry.Outcome),
			status,
			valueOrDash(entry.PackID),
			valueOrDash(entry.VocabID),
			valueOrDash(entry.Subject),
			valueOrDash(image),
			valueOrDash(entry.Message),
		})
	}
	return rows
}
