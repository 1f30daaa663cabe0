package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/report"
	"github.com/pable/blasereplay/internal/timeline"
)

var watchImportant bool

var watchCmd = &cobra.Command{
	Use:   "watch <game-id>",
	Short: "Follow a live game",
	Long: `Polls the archive at the configured interval, appending new snapshots to
the view's buffer and re-deriving the display list each tick. Appends are
idempotent by hash, so a stale poll response never corrupts the timeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchImportant, "important", false, "only noteworthy plays")
}

func runWatch(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// The buffer is owned by this view. Rows are only ever appended; each
	// tick re-reconciles the whole accumulated set.
	var buffer []model.GameSnapshot
	seen := make(map[string]bool)
	cursor := ""
	printedRows := make(map[string]bool)
	live := true

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	for live {
		snaps, next, err := client.GameUpdates(gameID, cursor, false)
		if err != nil {
			// A failed poll is terminal for the tick, not the view.
			logger.Warn("poll failed", "game", gameID, "error", err)
		} else {
			for _, s := range snaps {
				if s.Hash != "" && seen[s.Hash] {
					continue
				}
				seen[s.Hash] = true
				buffer = append(buffer, s)
			}
			if next != "" {
				cursor = next
			}
			if n := len(buffer); n > 0 && buffer[n-1].Data.GameComplete {
				live = false
			}
		}

		rows := timeline.Reconcile(buffer, timeline.Options{OnlyImportant: watchImportant})
		if fresh := unprintedRows(rows, printedRows); len(fresh) > 0 {
			report.PrintTimeline(os.Stdout, fresh)
		}

		if !live {
			break
		}
		select {
		case <-ticker.C:
		case <-interrupt:
			fmt.Fprintln(os.Stderr, "stopped")
			return nil
		}
	}

	logger.Info("game complete", "game", gameID)
	return nil
}

// unprintedRows returns, in display order, the rows not printed on an
// earlier tick and marks them. Re-reconciling can insert a row in front of
// already-printed ones (the leading top-of-inning-0 header), so a plain
// index cursor would reprint the tail and never show the insertion.
func unprintedRows(rows []timeline.Row, printed map[string]bool) []timeline.Row {
	var fresh []timeline.Row
	for _, r := range rows {
		k := rowKey(r)
		if printed[k] {
			continue
		}
		printed[k] = true
		fresh = append(fresh, r)
	}
	return fresh
}

func rowKey(r timeline.Row) string {
	switch r.Kind {
	case timeline.RowHeader:
		return fmt.Sprintf("header/%d/%t", r.Inning, r.TopOfInning)
	case timeline.RowSecondary:
		return fmt.Sprintf("secondary/%s/%s", r.Secondary.Kind,
			r.Secondary.Timestamp.Format(time.RFC3339Nano))
	default:
		if r.Snapshot.Hash != "" {
			return "update/" + r.Snapshot.Hash
		}
		return "update/" + r.Snapshot.Timestamp.Format(time.RFC3339Nano) + "/" + r.Snapshot.Data.LastUpdate
	}
}
