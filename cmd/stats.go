package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"teamhub/config"
	"teamhub/connection"
	"teamhub/docstore"
	"teamhub/services"
	"teamhub/store"
	"teamhub/syncer"
)

func statsCmd() *cobra.Command {
	var userID string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print project progress tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fb, err := connection.FBConnection(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer fb.Close()

			dir := store.NewDirectory()
			watcher := syncer.New(docstore.NewFirestoreStore(fb.Firestore), dir)
			watcher.Start(cmd.Context())
			defer watcher.Stop()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := awaitCollections(ctx, dir, store.Tasks, store.Users, store.ChatMessages); err != nil {
				return err
			}
			summary := services.BuildSummary(dir.Snapshot(), userID, time.Now())
			renderSummary(os.Stdout, summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "list pending work items of this user id")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "how long to wait for the first snapshots")
	return cmd
}

// awaitCollections blocks until each collection has received its first
// snapshot.
func awaitCollections(ctx context.Context, dir *store.Directory, collections ...store.Collection) error {
	for _, c := range collections {
		events, cancel := dir.Subscribe(c)
		select {
		case <-events:
			cancel()
		case <-ctx.Done():
			cancel()
			return fmt.Errorf("waiting for %s: %w", c, ctx.Err())
		}
	}
	return nil
}

func renderSummary(w io.Writer, s services.Summary) {
	fmt.Fprintf(w, "Work items: %d, completed: %d (%d%%)\n\n", s.TotalItems, s.CompletedItems, s.OverallProgress)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Status", "Items"})
	for _, sc := range s.StatusCounts {
		tw.AppendRow(table.Row{sc.Status, sc.Count})
	}
	tw.Render()

	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Member", "Completed", "Total", "Progress", "Messages"})
	for i, m := range s.Members {
		messages := 0
		if i < len(s.Communication) {
			messages = s.Communication[i].Messages
		}
		tw.AppendRow(table.Row{m.Name, m.Completed, m.Total, fmt.Sprintf("%d%%", m.Progress), messages})
	}
	tw.Render()

	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Phase", "Completed", "Total", "Progress"})
	for _, p := range s.Phases {
		tw.AppendRow(table.Row{p.Title, p.Completed, p.Total, fmt.Sprintf("%d%%", p.Progress)})
	}
	tw.Render()

	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Week", "Completed"})
	for _, wk := range s.Weekly {
		tw.AppendRow(table.Row{wk.Week, wk.Completed})
	}
	tw.Render()

	if len(s.Pending) > 0 {
		tw = table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Pending", "Status", "Progress"})
		for _, t := range s.Pending {
			tw.AppendRow(table.Row{t.Title, t.Status, fmt.Sprintf("%d%%", t.Progress)})
		}
		tw.Render()
	}
}
