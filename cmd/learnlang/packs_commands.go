package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
	"learnlang/internal/history"
	"learnlang/internal/submit"
)

func newPacksCommand(ctx *commandContext) *cobra.Command {
	packsCmd := &cobra.Command{
		Use:   "packs",
		Short: "List, show and create vocabulary packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			packs, err := client.ListPacks(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, packs)
			}
			out := cmd.OutOrStdout()
			if len(packs) == 0 {
				fmt.Fprintln(out, "No packs found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Language", "Owner", "Public"}, packRows(packs), nil))
			return nil
		},
	}

	packsCmd.AddCommand(newPacksShowCommand(ctx))
	packsCmd.AddCommand(newPacksCreateCommand(ctx))
	return packsCmd
}

func packRows(packs []api.Pack) [][]string {
	rows := make([][]string, 0, len(packs))
	for _, pack := range packs {
		public := "-"
		if pack.IsPublic != nil {
			public = yesNo(*pack.IsPublic)
		}
		rows = append(rows, []string{pack.ID, pack.Name, pack.Language(), pack.OwnerID, public})
	}
	return rows
}

func newPacksShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a pack and its vocabs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			detail, err := client.GetPackDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, detail)
			}

			out := cmd.OutOrStdout()
			status := newStatusWriter(out)
			status.section(detail.Pack.Name)
			status.line("Pack", statusInfo, detail.Pack.ID)
			status.line("Language", statusInfo, detail.Pack.Language())
			status.line("Vocabs", statusInfo, strconv.Itoa(len(detail.Vocabs)))
			if len(detail.Vocabs) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(detail.Vocabs))
			for _, vocab := range detail.Vocabs {
				rows = append(rows, []string{vocab.ID, vocab.Name, vocab.Translation, client.ImageURL(vocab.ImagePath)})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Translation", "Image"}, rows, nil))
			return nil
		},
	}
}

func newPacksCreateCommand(ctx *commandContext) *cobra.Command {
	var form submit.PackForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(form.Name) != "" {
				if form.LanguageID, err = resolveLanguageID(cmd, client, form.LanguageID); err != nil {
					return err
				}
			}
			return ctx.withJournal(func(journal *history.Store) error {
				submitter := submit.NewPackSubmitter(client, cfg.Defaults.UserID,
					submit.WithRecorder(journal),
					submit.WithLogger(ctx.loggerFor(cmd)),
				)
				pack, err := submitter.Create(cmd.Context(), form)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, pack)
				}
				newStatusWriter(cmd.OutOrStdout()).line("Pack", statusOK, fmt.Sprintf("created %s (%s)", pack.Name, pack.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Pack name")
	cmd.Flags().StringVar(&form.LanguageID, "lang", "", "Language id, code or name")
	cmd.Flags().StringVar(&form.OwnerID, "user", "", "Owner id (defaults to defaults.user_id)")
	return cmd
}
