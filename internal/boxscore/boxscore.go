// Package boxscore aggregates a game's pre-computed stat sheets into the
// classic runs-by-inning box score with hit totals.
package boxscore

import "strconv"

// GameSheet is the game-level stat sheet: recorded per-inning runs and the
// ids of each side's team sheet.
type GameSheet struct {
	ID                   string    `json:"id"`
	AwayTeamStatsID      string    `json:"awayTeamStats"`
	HomeTeamStatsID      string    `json:"homeTeamStats"`
	AwayTeamRunsByInning []float64 `json:"awayTeamRunsByInning"`
	HomeTeamRunsByInning []float64 `json:"homeTeamRunsByInning"`
}

// TeamSheet names the player sheets rostered for one side of one game.
type TeamSheet struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	PlayerStatsIDs []string `json:"playerStats"`
}

// PlayerSheet is the slice of a player stat sheet the box score needs.
type PlayerSheet struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	AtBats   int    `json:"atBats"`
	Hits     int    `json:"hits"`
	HomeRuns int    `json:"homeRuns"`
}

// Line is one side of a box score.
type Line struct {
	TeamName string
	// RunsByInning holds the recorded innings only, unpadded.
	RunsByInning []float64
	TotalRuns    float64
	TotalHits    int
}

// Score is a complete two-sided box score.
type Score struct {
	Away Line
	Home Line
	// Innings is the number of columns to display: max(9, innings recorded
	// on either side).
	Innings int
	// Complete marks the game finished, which turns unplayed inning cells
	// into "X" instead of blank.
	Complete bool
}

// Compute builds the box score from a game sheet and the team/player sheets
// fetched alongside it. Team sheets are located by the game's recorded stats
// ids; hits are summed over the player sheets rostered in each team sheet.
func Compute(game GameSheet, teams []TeamSheet, players []PlayerSheet, complete bool) Score {
	innings := len(game.AwayTeamRunsByInning)
	if len(game.HomeTeamRunsByInning) > innings {
		innings = len(game.HomeTeamRunsByInning)
	}
	if innings < 9 {
		innings = 9
	}

	return Score{
		Away:     sideLine(game.AwayTeamStatsID, game.AwayTeamRunsByInning, teams, players),
		Home:     sideLine(game.HomeTeamStatsID, game.HomeTeamRunsByInning, teams, players),
		Innings:  innings,
		Complete: complete,
	}
}

func sideLine(teamStatsID string, runs []float64, teams []TeamSheet, players []PlayerSheet) Line {
	line := Line{RunsByInning: append([]float64(nil), runs...)}
	for _, r := range runs {
		line.TotalRuns += r
	}

	var sheet *TeamSheet
	for i := range teams {
		if teams[i].ID == teamStatsID {
			sheet = &teams[i]
			break
		}
	}
	if sheet == nil {
		return line
	}
	line.TeamName = sheet.Name

	rostered := make(map[string]bool, len(sheet.PlayerStatsIDs))
	for _, id := range sheet.PlayerStatsIDs {
		rostered[id] = true
	}
	for _, p := range players {
		if rostered[p.ID] {
			line.TotalHits += p.Hits
		}
	}
	return line
}

// Cells renders one side's inning cells out to the display width: recorded
// innings as numbers, then "X" once the game is complete (those innings were
// never played), else blank while play could still continue.
func (s Score) Cells(side Line) []string {
	out := make([]string, s.Innings)
	for i := 0; i < s.Innings; i++ {
		switch {
		case i < len(side.RunsByInning):
			out[i] = strconv.FormatFloat(side.RunsByInning[i], 'f', -1, 64)
		case s.Complete:
			out[i] = "X"
		default:
			out[i] = ""
		}
	}
	return out
}
