package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
	"learnlang/internal/config"
)

func newFlashcardsCommand(ctx *commandContext) *cobra.Command {
	var (
		langID  string
		userID  string
		packIDs []string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "flashcards",
		Short: "Draw a random batch of flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(langID) == "" {
				return fmt.Errorf("--lang is required")
			}
			if limit == 0 {
				limit = cfg.Defaults.FlashcardsLimit
			}
			if limit < 1 || limit > config.MaxFlashcardsLimit {
				return fmt.Errorf("--limit must be between 1 and %d", config.MaxFlashcardsLimit)
			}
			if strings.TrimSpace(userID) == "" {
				userID = cfg.Defaults.UserID
			}

			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			resolvedLang, err := resolveLanguageID(cmd, client, langID)
			if err != nil {
				return err
			}
			batch, err := client.Flashcards(cmd.Context(), api.FlashcardQuery{
				UserID:     userID,
				LanguageID: resolvedLang,
				PackIDs:    packIDs,
				Limit:      limit,
			})
			if err != nil {
				return err
			}
			for i := range batch.Cards {
				batch.Cards[i].Image = client.ImageURL(batch.Cards[i].Image)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, batch)
			}
			out := cmd.OutOrStdout()
			if len(batch.Cards) == 0 {
				fmt.Fprintln(out, "No flashcards available")
				return nil
			}
			rows := make([][]string, 0, len(batch.Cards))
			for i, card := range batch.Cards {
				rows = append(rows, []string{strconv.Itoa(i + 1), card.Name, card.PackName, card.Image})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Name", "Pack", "Image"}, rows, []columnAlignment{alignRight}))
			fmt.Fprintf(out, "%d cards\n", batch.Count)
			return nil
		},
	}
	cmd.Flags().StringVar(&langID, "lang", "", "Language id, code or name")
	cmd.Flags().StringVar(&userID, "user", "", "User id (defaults to defaults.user_id)")
	cmd.Flags().StringSliceVar(&packIDs, "packs", nil, "Restrict to these pack ids")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of cards (defaults to defaults.flashcards_limit)")
	return cmd
}
