package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/chronicler"
	"github.com/pable/blasereplay/internal/report"
)

var (
	gamesSeason  int
	gamesDay     int
	gamesTeam    string
	gamesWeather int
	gamesSim     string
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List games for a season",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func init() {
	gamesCmd.Flags().IntVar(&gamesSeason, "season", 0, "season number, 1-based (defaults to the config file's season)")
	gamesCmd.Flags().IntVar(&gamesDay, "day", 0, "only this day, 1-based")
	gamesCmd.Flags().StringVar(&gamesTeam, "team", "", "only games involving this team id")
	gamesCmd.Flags().IntVar(&gamesWeather, "weather", -1, "only games under this weather id")
	gamesCmd.Flags().StringVar(&gamesSim, "sim", "", "only games from this simulation id")
}

// resolveSeason picks the 1-based season to list: the flag when given,
// otherwise the config file's default.
func resolveSeason(flagSeason, cfgSeason int) (int, error) {
	if flagSeason > 0 {
		return flagSeason, nil
	}
	if cfgSeason > 0 {
		return cfgSeason, nil
	}
	return 0, errors.New("season required: pass --season or set season in the config file")
}

func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	season, err := resolveSeason(gamesSeason, cfg.Season)
	if err != nil {
		return err
	}

	q := chronicler.GamesQuery{
		// Display is 1-based; the archive counts seasons and days from 0.
		Season: season - 1,
		Team:   gamesTeam,
		Sim:    gamesSim,
	}
	if gamesDay > 0 {
		q.Day = gamesDay - 1
		q.HasDay = true
	}
	if gamesWeather >= 0 {
		q.Weather = gamesWeather
		q.HasWeather = true
	}

	games, err := client.Games(q)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games found.")
		return nil
	}
	report.PrintGameList(os.Stdout, games)
	return nil
}
