package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
	"learnlang/internal/drafts"
	"learnlang/internal/history"
	"learnlang/internal/selection"
	"learnlang/internal/submit"
)

func newDraftCommand(ctx *commandContext) *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Build a vocab form across several commands, then submit it",
	}
	draftCmd.AddCommand(newDraftNewCommand(ctx))
	draftCmd.AddCommand(newDraftEditCommand(ctx))
	draftCmd.AddCommand(newDraftShowCommand(ctx))
	draftCmd.AddCommand(newDraftListCommand(ctx))
	draftCmd.AddCommand(newDraftSubmitCommand(ctx))
	draftCmd.AddCommand(newDraftDiscardCommand(ctx))
	return draftCmd
}

func newDraftNewCommand(ctx *commandContext) *cobra.Command {
	var packID, vocabID string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a draft for a new vocab, or for editing one with --vocab",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			mode := drafts.ModeCreate
			if strings.TrimSpace(vocabID) != "" {
				mode = drafts.ModeUpdate
			}
			draft, err := store.Create(mode, packID, vocabID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, draft)
			}
			fmt.Fprintln(cmd.OutOrStdout(), draft.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&packID, "pack", "", "Pack id")
	cmd.Flags().StringVar(&vocabID, "vocab", "", "Vocab id to edit")
	return cmd
}

func newDraftEditCommand(ctx *commandContext) *cobra.Command {
	var (
		name, translation, file, imageURL string
		attach, clearImage                bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a draft's fields or image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			draft, err := store.Load(args[0])
			if err != nil {
				return err
			}
			sel, err := store.Selection(draft)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				draft.Name = name
			}
			if flags.Changed("translation") {
				draft.Translation = translation
			}
			if clearImage {
				sel.Reset()
			}
			if flags.Changed("url") {
				sel.TypeURL(imageURL)
			}
			if err := applyImageFlags(sel, file, ""); err != nil {
				return err
			}
			if attach {
				acquirer, err := ctx.acquirer(cmd)
				if err != nil {
					return err
				}
				if err := sel.Attach(cmd.Context(), acquirer); err != nil {
					return err
				}
			}

			saved, err := store.Save(draft, sel)
			if err != nil {
				return err
			}
			return printDraft(cmd, ctx, saved, sel)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Vocab name")
	cmd.Flags().StringVar(&translation, "translation", "", "Translation")
	cmd.Flags().StringVar(&file, "file", "", "Image file (replaces the URL field)")
	cmd.Flags().StringVar(&imageURL, "url", "", "Image URL text")
	cmd.Flags().BoolVar(&attach, "attach", false, "Fetch the image URL now and keep the result")
	cmd.Flags().BoolVar(&clearImage, "clear-image", false, "Forget the chosen image and URL")
	return cmd
}

func newDraftShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			draft, err := store.Load(args[0])
			if err != nil {
				return err
			}
			sel, err := store.Selection(draft)
			if err != nil {
				return err
			}
			return printDraft(cmd, ctx, draft, sel)
		},
	}
}

func printDraft(cmd *cobra.Command, ctx *commandContext, draft drafts.Draft, sel *selection.Selection) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, draft)
	}
	status := newStatusWriter(cmd.OutOrStdout())
	status.section("Draft " + draft.ID)
	status.line("Mode", statusInfo, string(draft.Mode))
	status.line("Pack", statusInfo, valueOrDash(draft.PackID))
	if draft.Mode == drafts.ModeUpdate {
		status.line("Vocab", statusInfo, draft.VocabID)
	}
	status.line("Name", fieldKind(draft.Name, draft.Mode == drafts.ModeUpdate), valueOrDash(draft.Name))
	status.line("Translation", fieldKind(draft.Translation, draft.Mode == drafts.ModeCreate), valueOrDash(draft.Translation))
	imageKind := statusOK
	if sel.Kind() == selection.None {
		imageKind = statusInfo
		if draft.Mode == drafts.ModeCreate {
			imageKind = statusWarn
		}
	}
	status.line("Image", imageKind, sel.Describe())
	return nil
}

func fieldKind(value string, required bool) statusKind {
	switch {
	case strings.TrimSpace(value) != "":
		return statusOK
	case required:
		return statusWarn
	default:
		return statusInfo
	}
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func newDraftListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			list, err := store.List()
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, list)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No drafts")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, draft := range list {
				rows = append(rows, []string{
					shortDraftID(draft.ID),
					string(draft.Mode),
					valueOrDash(draft.PackID),
					valueOrDash(draft.Name),
					valueOrDash(draft.Translation),
					draft.Image.Kind.String(),
					draft.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Mode", "Pack", "Name", "Translation", "Image", "Updated"}, rows, nil))
			return nil
		},
	}
}

func shortDraftID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newDraftSubmitCommand(ctx *commandContext) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "submit ID",
		Short: "Send a draft to the backend and remove it on success",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			draft, err := store.Load(args[0])
			if err != nil {
				return err
			}
			unlock, err := store.Lock(draft.ID)
			if err != nil {
				return err
			}
			defer func() { _ = unlock() }()

			sel, err := store.Selection(draft)
			if err != nil {
				return err
			}
			form := submit.VocabForm{
				PackID:      draft.PackID,
				VocabID:     draft.VocabID,
				Name:        draft.Name,
				Translation: draft.Translation,
				Image:       sel,
			}

			return ctx.withJournal(func(journal *history.Store) error {
				submitter, client, err := ctx.vocabSubmitter(cmd, journal, submit.WithDraftID(draft.ID))
				if err != nil {
					return err
				}
				var vocab api.Vocab
				verb := "created"
				if draft.Mode == drafts.ModeUpdate {
					verb = "updated"
					vocab, err = submitter.Update(cmd.Context(), form)
				} else {
					vocab, err = submitter.Create(cmd.Context(), form)
				}
				if err != nil {
					return err
				}
				if keep && vocab.ID != "" {
					draft.VocabID = vocab.ID
					draft.Mode = drafts.ModeUpdate
					if _, err := store.Save(draft, sel); err != nil {
						return err
					}
				} else if err := store.Discard(draft.ID); err != nil {
					return err
				}
				return printVocabResult(cmd, ctx, client, verb, vocab)
			})
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the draft as an edit of the submitted vocab")
	return cmd
}

func newDraftDiscardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discard ID",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Discard(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft discarded")
			return nil
		},
	}
}
