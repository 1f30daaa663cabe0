package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/outcomes"
	"github.com/pable/blasereplay/internal/report"
	"github.com/pable/blasereplay/internal/timeline"
)

var (
	gameDesc      bool
	gameImportant bool
	gameTemporal  bool
	gamePressure  bool
)

var gameCmd = &cobra.Command{
	Use:   "game <game-id>",
	Short: "Show the play-by-play for one game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGame,
}

func init() {
	gameCmd.Flags().BoolVar(&gameDesc, "desc", false, "newest plays first")
	gameCmd.Flags().BoolVar(&gameImportant, "important", false, "only noteworthy plays")
	gameCmd.Flags().BoolVar(&gameTemporal, "temporal", false, "interleave world events by timestamp")
	gameCmd.Flags().BoolVar(&gamePressure, "pressure", false, "interleave sun-pressure readings by timestamp")
}

func runGame(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	snaps, err := client.AllGameUpdates(gameID, true)
	if err != nil {
		return fmt.Errorf("fetch game %s: %w", gameID, err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stdout, "No updates recorded for this game.")
		return nil
	}

	var secondary []model.SecondaryEvent
	if gameTemporal || gamePressure {
		first := snaps[0].Timestamp
		last := snaps[len(snaps)-1].Timestamp
		if gameTemporal {
			events, err := client.Temporal(first, last)
			if err != nil {
				return fmt.Errorf("fetch temporal events: %w", err)
			}
			secondary = append(secondary, events...)
		}
		if gamePressure {
			events, err := client.SunPressure(first, last)
			if err != nil {
				return fmt.Errorf("fetch pressure readings: %w", err)
			}
			secondary = append(secondary, events...)
		}
	}

	opts := timeline.Options{
		OnlyImportant: gameImportant,
		Secondary:     secondary,
	}
	if gameDesc {
		opts.Direction = timeline.Descending
	}
	rows := timeline.Reconcile(snaps, opts)

	final := &snaps[len(snaps)-1].Data
	fmt.Fprintf(os.Stdout, "Season %d, Day %d — %s %s vs. %s %s\n",
		final.Season+1, final.Day+1,
		final.AwayTeamEmoji, final.AwayTeamNickname,
		final.HomeTeamEmoji, final.HomeTeamNickname)

	report.PrintTimeline(os.Stdout, rows)
	report.PrintOutcomeGroups(os.Stdout, gameTags(snaps))
	return nil
}

// gameTags classifies every outcome string in the stream against the legacy
// table, adds the synthesized shame tag, and groups the result.
func gameTags(snaps []model.GameSnapshot) []outcomes.TagGroup {
	final := &snaps[len(snaps)-1].Data

	seen := make(map[string]bool)
	var tags []outcomes.Tag
	for i := range snaps {
		for _, raw := range snaps[i].Data.Outcomes {
			if seen[raw] {
				continue
			}
			seen[raw] = true
			if tag := outcomes.Classify(raw, outcomes.LegacyRules); tag != nil {
				tags = append(tags, *tag)
			}
		}
	}
	if shame := outcomes.ShameTag(final); shame != nil {
		tags = append(tags, *shame)
	}
	return outcomes.GroupTags(tags)
}
