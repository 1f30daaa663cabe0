// Package report renders reconciled timelines, listings, player histories,
// and box scores as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/blasereplay/internal/boxscore"
	"github.com/pable/blasereplay/internal/history"
	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/outcomes"
	"github.com/pable/blasereplay/internal/timeline"
	"github.com/pable/blasereplay/internal/weather"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// halfLabel renders a half-inning for display; innings are 0-based upstream.
func halfLabel(inning int, top bool) string {
	if top {
		return fmt.Sprintf("Top of %d", inning+1)
	}
	return fmt.Sprintf("Bottom of %d", inning+1)
}

// PrintGameList writes the season's game listing.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("DAY", "AWAY", "HOME", "SCORE", "WEATHER", "GAME ID")
	for _, g := range games {
		wx := "—"
		if entry, err := weather.Lookup(g.Data.Weather); err == nil {
			wx = fmt.Sprintf("%s %s", entry.Emoji, entry.Name)
		}
		table.Append(
			strconv.Itoa(g.Data.Day+1),
			fmt.Sprintf("%s %s", g.Data.AwayTeamEmoji, g.Data.AwayTeamNickname),
			fmt.Sprintf("%s %s", g.Data.HomeTeamEmoji, g.Data.HomeTeamNickname),
			fmt.Sprintf("%g–%g", g.Data.AwayScore, g.Data.HomeScore),
			wx,
			g.GameID,
		)
	}
	table.Render()
}

// PrintTimeline writes a reconciled play-by-play. Header rows become section
// dividers; update and secondary rows share one table per section.
func PrintTimeline(w io.Writer, rows []timeline.Row) {
	var table *tablewriter.Table
	flush := func() {
		if table != nil {
			table.Render()
			table = nil
		}
	}

	for _, r := range rows {
		switch r.Kind {
		case timeline.RowHeader:
			flush()
			d := &r.Snapshot.Data
			fmt.Fprintf(w, "\n%s — %s batting, %s pitching for the %s\n",
				halfLabel(r.Inning, r.TopOfInning),
				d.BattingTeamName(), d.CurrentPitcherName(), d.PitchingTeamName())
		case timeline.RowUpdate:
			if table == nil {
				table = newTable(w)
				table.Header("TIME", "SCORE", "COUNT", "PLAY")
			}
			d := &r.Snapshot.Data
			play := d.LastUpdate
			if d.ScoreUpdate != "" {
				play += "  " + d.ScoreUpdate
			}
			table.Append(
				r.Snapshot.Timestamp.Format("15:04:05"),
				fmt.Sprintf("%g–%g", d.AwayScore, d.HomeScore),
				fmt.Sprintf("%d-%d %dout", d.AtBatBalls, d.AtBatStrikes, d.HalfInningOuts),
				play,
			)
		case timeline.RowSecondary:
			if table == nil {
				table = newTable(w)
				table.Header("TIME", "SCORE", "COUNT", "PLAY")
			}
			table.Append(
				r.Secondary.Timestamp.Format("15:04:05"),
				"", "",
				secondaryText(r.Secondary),
			)
		}
	}
	flush()
}

func secondaryText(ev *model.SecondaryEvent) string {
	switch ev.Kind {
	case model.SecondaryTemporal:
		return fmt.Sprintf("⏳ %s", ev.Text)
	case model.SecondaryFightDamage:
		return fmt.Sprintf("💥 The %s take %d damage!", ev.Target, ev.Damage)
	case model.SecondaryPressure:
		return fmt.Sprintf("☀️ Pressure %g / %g", ev.Pressure, ev.PressureMax)
	default:
		return ev.Text
	}
}

// PrintOutcomeGroups writes a game's grouped outcome tags.
func PrintOutcomeGroups(w io.Writer, groups []outcomes.TagGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, g := range groups {
		fmt.Fprintln(w, g.Label())
		for _, line := range strings.Split(g.Text, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

// PrintCheckpoints writes a player's consolidated history, one row per
// checkpoint, with the changed fields relative to the previous one.
func PrintCheckpoints(w io.Writer, checkpoints []history.Checkpoint) {
	table := newTable(w)
	table.Header("FIRST SEEN", "LAST SEEN", "NAME", "STARS (B/P/R/D)", "CHANGED")
	for i, cp := range checkpoints {
		changed := "first seen"
		if i > 0 {
			diff := history.Diff(checkpoints[i-1].State, cp.State)
			changed = strings.Join(diff, ", ")
		}
		table.Append(
			cp.FirstSeen.Format("2006-01-02 15:04"),
			cp.LastSeen.Format("2006-01-02 15:04"),
			cp.State.Name,
			fmt.Sprintf("%.1f/%.1f/%.1f/%.1f",
				cp.State.BattingStars, cp.State.PitchingStars,
				cp.State.BaserunningStars, cp.State.DefenseStars),
			changed,
		)
	}
	table.Render()
}

// PrintBoxScore writes the classic runs-by-inning grid with totals.
func PrintBoxScore(w io.Writer, score boxscore.Score) {
	table := newTable(w)

	header := make([]any, 0, score.Innings+3)
	header = append(header, "")
	for i := 1; i <= score.Innings; i++ {
		header = append(header, strconv.Itoa(i))
	}
	header = append(header, "R", "H")
	table.Header(header...)

	for _, side := range []boxscore.Line{score.Away, score.Home} {
		row := make([]any, 0, score.Innings+3)
		row = append(row, side.TeamName)
		for _, cell := range score.Cells(side) {
			row = append(row, cell)
		}
		row = append(row,
			strconv.FormatFloat(side.TotalRuns, 'f', -1, 64),
			strconv.Itoa(side.TotalHits),
		)
		table.Append(row...)
	}
	table.Render()
}
