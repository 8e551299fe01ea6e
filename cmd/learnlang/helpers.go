package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
	"learnlang/internal/config"
	"learnlang/internal/history"
	"learnlang/internal/media"
	"learnlang/internal/selection"
	"learnlang/internal/submit"
)

// applyImageFlags feeds --url into the URL field and --file into the drop
// zone. A file given alongside a URL wins, as a dropped file does.
func applyImageFlags(sel *selection.Selection, filePath, imageURL string) error {
	if u := strings.TrimSpace(imageURL); u != "" {
		sel.TypeURL(u)
	}
	path := strings.TrimSpace(filePath)
	if path == "" {
		return nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve image path: %w", err)
	}
	file, err := media.OpenLocalFile(expanded)
	if err != nil {
		return err
	}
	return sel.Drop(file)
}

// vocabSubmitter builds a submitter that journals into journal.
func (c *commandContext) vocabSubmitter(cmd *cobra.Command, journal *history.Store, opts ...submit.Option) (*submit.Submitter, *api.Client, error) {
	client, err := c.apiClient(cmd)
	if err != nil {
		return nil, nil, err
	}
	acquirer, err := c.acquirer(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]submit.Option{
		submit.WithRecorder(journal),
		submit.WithLogger(c.loggerFor(cmd)),
	}, opts...)
	return submit.New(client, acquirer, opts...), client, nil
}

func printVocabResult(cmd *cobra.Command, ctx *commandContext, client *api.Client, verb string, vocab api.Vocab) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, vocab)
	}
	status := newStatusWriter(cmd.OutOrStdout())
	label := vocab.Name
	if label == "" {
		label = vocab.Translation
	}
	status.line("Vocab", statusOK, fmt.Sprintf("%s %s (%s)", verb, label, vocab.ID))
	if vocab.ImagePath != "" {
		status.line("Image", statusInfo, client.ImageURL(vocab.ImagePath))
	}
	return nil
}
