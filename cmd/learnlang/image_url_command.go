package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"learnlang/internal/api"
)

func newImageURLCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "image-url PATH...",
		Short: "Resolve backend image paths against api.base_url",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				fmt.Fprintln(out, api.ResolveImageURL(cfg.API.BaseURL, path))
			}
			return nil
		},
	}
}
