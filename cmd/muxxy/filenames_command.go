package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"muxxy/internal/naming"
)

func newFilenamesCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "filenames",
		Short: "Print every video and subtitle found with its parsed episode info",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			videos, err := findVideos(dir)
			if err != nil {
				return fmt.Errorf("scan for videos: %w", err)
			}
			fmt.Fprintln(out, "MKV files found:")
			printParsedNames(out, videos)

			subtitles, err := findSubtitles(dir)
			if err != nil {
				return fmt.Errorf("scan for subtitles: %w", err)
			}
			fmt.Fprintln(out, "\nSubtitle files found:")
			printParsedNames(out, subtitles)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to search")

	return cmd
}

func printParsedNames(out io.Writer, paths []string) {
	for _, path := range paths {
		base := filepath.Base(path)
		if label := naming.ExtractEpisodeInfo(naming.Stem(path)).Label(); label != "" {
			fmt.Fprintf(out, "  %s (%s)\n", base, label)
		} else {
			fmt.Fprintf(out, "  %s\n", base)
		}
	}
}
