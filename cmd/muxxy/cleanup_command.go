package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"muxxy/internal/fileutil"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove leftover transformed subtitles from the work directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			workspace := fileutil.NewWorkspace(cfg.Paths.WorkDir)
			if err := workspace.Cleanup(); err != nil {
				return fmt.Errorf("clean workspace: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleaned %s\n", workspace.Dir())
			return nil
		},
	}
}
