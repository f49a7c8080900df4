package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"submatch/internal/identify"
	"submatch/internal/mediafile"
	"submatch/internal/pairing"
)

type identifyView struct {
	Path   string `json:"path"`
	State  string `json:"state"`
	IMDBID string `json:"imdb_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Year   string `json:"year,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "identify <path>...",
		Short: "Resolve media files to movie or episode identities",
		Long: `Resolve files to identities using the remote guessing service with a
persistent cache. Directories are discovered and paired first; videos and
orphaned subtitles are identified, paired subtitles inherit their video's
group. Results are cached, so repeat runs avoid remote calls.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			identifier, err := ctx.newIdentifier(store)
			if err != nil {
				return err
			}

			entries, err := collectEntries(args)
			if err != nil {
				return err
			}

			views := make([]identifyView, 0, len(entries))
			for _, entry := range entries {
				result := identifier.Identify(cmd.Context(), entry)
				views = append(views, newIdentifyView(entry.Path, result))
			}

			if jsonOut {
				return writeJSON(cmd, views)
			}
			rows := make([][]string, 0, len(views))
			for _, view := range views {
				detail := view.Reason
				if view.Error != "" {
					detail = view.Error
				}
				title := view.Title
				if view.Year != "" {
					title = fmt.Sprintf("%s (%s)", title, view.Year)
				}
				rows = append(rows, []string{view.Path, view.State, view.IMDBID, title, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"FILE", "STATE", "IMDB", "TITLE", "DETAIL"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

// collectEntries expands arguments into the files to identify: videos and
// orphaned subtitles for directories, the file itself otherwise.
func collectEntries(args []string) ([]mediafile.FileEntry, error) {
	var entries []mediafile.FileEntry
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			entry, err := mediafile.NewEntry(arg)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
			continue
		}

		files, err := mediafile.Discover(arg)
		if err != nil {
			return nil, err
		}
		result := pairing.Pair(files)
		for _, group := range result.Groups {
			entries = append(entries, group.Video)
		}
		entries = append(entries, result.Orphans...)
	}
	return entries, nil
}

func newIdentifyView(path string, result identify.Result) identifyView {
	view := identifyView{
		Path:  path,
		State: result.State.String(),
		Error: result.Err,
	}
	if result.Identity != nil {
		view.IMDBID = result.Identity.IMDBID
		view.Title = result.Identity.FormattedTitle()
		view.Year = result.Identity.Year
		view.Reason = result.Identity.Reason
	}
	return view
}
