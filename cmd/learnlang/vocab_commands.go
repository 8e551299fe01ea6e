package main

import (
	"github.com/spf13/cobra"

	"learnlang/internal/history"
	"learnlang/internal/selection"
	"learnlang/internal/submit"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Add or edit vocabs",
	}
	vocabCmd.AddCommand(newVocabAddCommand(ctx))
	vocabCmd.AddCommand(newVocabEditCommand(ctx))
	return vocabCmd
}

type vocabFlags struct {
	packID      string
	name        string
	translation string
	file        string
	url         string
}

func (f *vocabFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.packID, "pack", "", "Pack id")
	cmd.Flags().StringVar(&f.name, "name", "", "Vocab name")
	cmd.Flags().StringVar(&f.translation, "translation", "", "Translation")
	cmd.Flags().StringVar(&f.file, "file", "", "Image file to upload")
	cmd.Flags().StringVar(&f.url, "url", "", "Image URL to fetch and upload")
}

func (f *vocabFlags) form(vocabID string) (submit.VocabForm, error) {
	sel := selection.New()
	if err := applyImageFlags(sel, f.file, f.url); err != nil {
		return submit.VocabForm{}, err
	}
	return submit.VocabForm{
		PackID:      f.packID,
		VocabID:     vocabID,
		Name:        f.name,
		Translation: f.translation,
		Image:       sel,
	}, nil
}

func newVocabAddCommand(ctx *commandContext) *cobra.Command {
	var flags vocabFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Upload a new vocab with an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form("")
			if err != nil {
				return err
			}
			return ctx.withJournal(func(journal *history.Store) error {
				submitter, client, err := ctx.vocabSubmitter(cmd, journal)
				if err != nil {
					return err
				}
				vocab, err := submitter.Create(cmd.Context(), form)
				if err != nil {
					return err
				}
				return printVocabResult(cmd, ctx, client, "created", vocab)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newVocabEditCommand(ctx *commandContext) *cobra.Command {
	var flags vocabFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a vocab; without --file or --url the image is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form(args[0])
			if err != nil {
				return err
			}
			return ctx.withJournal(func(journal *history.Store) error {
				submitter, client, err := ctx.vocabSubmitter(cmd, journal)
				if err != nil {
					return err
				}
				vocab, err := submitter.Update(cmd.Context(), form)
				if err != nil {
					return err
				}
				return printVocabResult(cmd, ctx, client, "updated", vocab)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
