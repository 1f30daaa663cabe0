package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/history"
	"github.com/pable/blasereplay/internal/report"
	"github.com/pable/blasereplay/internal/stats"
)

var playerDay int

var playerCmd = &cobra.Command{
	Use:   "player <player-id>",
	Short: "Show a player's consolidated history",
	Long: `Shows a player's version history consolidated into checkpoints: one row
per period where the displayed state (stars, item, ritual, flavor, scream)
did not change, with the fields that changed between checkpoints.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().IntVar(&playerDay, "day", 0, "day of season for the vibe readout, 1-based")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	playerID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	versions, err := client.PlayerVersions(playerID)
	if err != nil {
		return fmt.Errorf("fetch player %s: %w", playerID, err)
	}
	if len(versions) == 0 {
		fmt.Fprintln(os.Stdout, "No versions recorded for this player.")
		return nil
	}

	checkpoints := history.Consolidate(versions)
	latest := &checkpoints[len(checkpoints)-1].Version.Data

	fmt.Fprintf(os.Stdout, "%s — soulscream: %s\n", latest.Name, stats.SoulScream(latest.Attributes))
	if playerDay > 0 {
		vibe := stats.Vibe(latest.Attributes, playerDay-1)
		cat := stats.GetVibeCategory(vibe)
		fmt.Fprintf(os.Stdout, "Day %d vibes: %s (%.3f)\n", playerDay, cat.Text, vibe)
	}
	fmt.Fprintln(os.Stdout)

	report.PrintCheckpoints(os.Stdout, checkpoints)
	return nil
}
