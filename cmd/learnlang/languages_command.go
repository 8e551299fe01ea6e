package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
	"learnlang/internal/language"
)

type languageView struct {
	api.Language
	EnglishName string `json:"english_name,omitempty"`
	NativeName  string `json:"native_name,omitempty"`
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages packs can be created in",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			langs, err := client.ListLanguages(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]languageView, 0, len(langs))
			for _, lang := range langs {
				code := lang.Code
				if code == "" {
					code = lang.ID
				}
				views = append(views, languageView{
					Language:    lang,
					EnglishName: language.EnglishName(code),
					NativeName:  language.NativeName(code),
				})
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No languages found")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{view.ID, view.Name, view.Code, view.EnglishName, view.NativeName})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Code", "English", "Native"}, rows, nil))
			return nil
		},
	}
}

// resolveLanguageID maps --lang input such as "hin" or "Hindi" onto a
// backend language id. Input that matches nothing is passed through for the
// backend to judge.
func resolveLanguageID(cmd *cobra.Command, client *api.Client, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	langs, err := client.ListLanguages(cmd.Context())
	if err != nil {
		return "", err
	}
	if lang, ok := language.Match(input, langs); ok {
		return lang.ID, nil
	}
	return input, nil
}
