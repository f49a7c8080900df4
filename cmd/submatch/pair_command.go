package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"submatch/internal/mediafile"
	"submatch/internal/pairing"
)

type pairGroupView struct {
	Video     string   `json:"video"`
	Subtitles []string `json:"subtitles"`
}

type pairView struct {
	Groups  []pairGroupView `json:"groups"`
	Orphans []string        `json:"orphans"`
}

func newPairCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "pair <directory>",
		Short: "Discover media files and pair videos with their subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := mediafile.Discover(args[0])
			if err != nil {
				return err
			}
			result := pairing.Pair(files)

			if jsonOut {
				return writeJSON(cmd, newPairView(result))
			}

			rows := make([][]string, 0, len(result.Groups))
			for _, group := range result.Groups {
				names := make([]string, 0, len(group.Subtitles))
				for _, sub := range group.Subtitles {
					names = append(names, sub.Name)
				}
				rows = append(rows, []string{group.Video.Name, strings.Join(names, ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"VIDEO", "SUBTITLES"}, rows, nil))

			if len(result.Orphans) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Orphaned subtitles:")
				for _, orphan := range result.Orphans {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", orphan.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newPairView(result pairing.Result) pairView {
	view := pairView{Groups: make([]pairGroupView, 0, len(result.Groups)), Orphans: []string{}}
	for _, group := range result.Groups {
		gv := pairGroupView{Video: group.Video.Path, Subtitles: []string{}}
		for _, sub := range group.Subtitles {
			gv.Subtitles = append(gv.Subtitles, sub.Path)
		}
		view.Groups = append(view.Groups, gv)
	}
	for _, orphan := range result.Orphans {
		view.Orphans = append(view.Orphans, orphan.Path)
	}
	return view
}
