package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/boxscore"
	"github.com/pable/blasereplay/internal/chronicler"
	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/report"
)

var boxscoreCmd = &cobra.Command{
	Use:   "boxscore <game-id>",
	Short: "Show the box score for one game",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxscore,
}

func runBoxscore(cmd *cobra.Command, args []string) error {
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
	final := &snaps[len(snaps)-1].Data
	if final.StatsheetID == "" {
		fmt.Fprintln(os.Stdout, "This game predates stat sheets; no box score available.")
		return nil
	}

	score, err := fetchBoxScore(client, final)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Season %d, Day %d\n", final.Season+1, final.Day+1)
	report.PrintBoxScore(os.Stdout, score)
	return nil
}

// fetchBoxScore pulls the game/team/player stat sheets for a finished (or
// in-progress) game and aggregates them.
func fetchBoxScore(client *chronicler.Client, final *model.SnapshotData) (boxscore.Score, error) {
	cacheable := final.GameComplete

	game, err := client.GameSheet(final.StatsheetID, cacheable)
	if err != nil {
		return boxscore.Score{}, fmt.Errorf("fetch game sheet: %w", err)
	}
	teams, err := client.TeamSheets([]string{game.AwayTeamStatsID, game.HomeTeamStatsID}, cacheable)
	if err != nil {
		return boxscore.Score{}, fmt.Errorf("fetch team sheets: %w", err)
	}
	var playerIDs []string
	for _, t := range teams {
		playerIDs = append(playerIDs, t.PlayerStatsIDs...)
	}
	players, err := client.PlayerSheets(playerIDs, cacheable)
	if err != nil {
		return boxscore.Score{}, fmt.Errorf("fetch player sheets: %w", err)
	}

	score := boxscore.Compute(game, teams, players, final.GameComplete)
	if score.Away.TeamName == "" {
		score.Away.TeamName = final.AwayTeamNickname
	}
	if score.Home.TeamName == "" {
		score.Home.TeamName = final.HomeTeamNickname
	}
	return score, nil
}
