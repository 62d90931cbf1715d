package main

import (
	"github.com/spf13/cobra"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		dir                 string
		strict              bool
		confidenceThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Preview video/subtitle matches without muxing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Matching.Strict = strict
			}
			if cmd.Flags().Changed("confidence-threshold") {
				cfg.Matching.ConfidenceThreshold = confidenceThreshold
			}

			out := cmd.OutOrStdout()
			results, err := matchDirectory(ctx, dir, cfg.Matching.Strict, out)
			if err != nil || results == nil {
				return err
			}
			renderMatchPreview(out, results, cfg.Matching.ConfidenceThreshold)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to search for MKV files")
	cmd.Flags().BoolVar(&strict, "strict", false, "Use strict episode number matching")
	cmd.Flags().Float64Var(&confidenceThreshold, "confidence-threshold", 0, "Minimum confidence score for auto-matching (0.0-1.0)")

	return cmd
}
