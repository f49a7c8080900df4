package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"submatch/internal/hashing"
	"submatch/internal/mediafile"
)

type hashView struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Hash string `json:"hash"`
}

func newHashCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "hash <file>...",
		Short: "Compute content hashes for videos and subtitles",
		Long: `Compute content hashes: videos get the published 64-bit checksum over
their first and last 64 KiB, subtitles get a 128-bit digest of their raw
bytes. Hashing failures are reported per file without aborting the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]hashView, 0, len(args))
			var firstErr error
			for _, path := range args {
				view, err := hashOne(cmd.Context(), ctx, path)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				views = append(views, view)
			}

			if jsonOut {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else if len(views) > 0 {
				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{view.Path, view.Kind, view.Hash})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"FILE", "KIND", "HASH"}, rows, nil))
			}
			return firstErr
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func hashOne(ctx context.Context, cmdCtx *commandContext, path string) (hashView, error) {
	entry, err := mediafile.NewEntry(path)
	if err != nil {
		return hashView{}, err
	}

	var hash string
	switch entry.Kind {
	case mediafile.KindVideo:
		hash, err = hashing.WithRetry(ctx, cmdCtx.hashRetryOptions(), func(context.Context) (string, error) {
			return hashing.VideoHashFile(entry.Path)
		})
	case mediafile.KindSubtitle:
		var data []byte
		data, err = mediafile.ReadBytes(entry)
		if err == nil {
			hash = hashing.SubtitleDigest(data)
		}
	default:
		err = fmt.Errorf("unsupported file type")
	}
	if err != nil {
		return hashView{}, err
	}
	return hashView{Path: entry.Path, Kind: entry.Kind.String(), Hash: hash}, nil
}
