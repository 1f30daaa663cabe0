package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/chronicler"
	"github.com/pable/blasereplay/internal/report"
	"github.com/pable/blasereplay/internal/timeline"
)

var fightDesc bool

var fightCmd = &cobra.Command{
	Use:   "fight <fight-id>",
	Short: "Show the log of a boss fight",
	Long: `Shows a boss fight's narrative timeline with boss damage applications
interleaved at their recorded timestamps.`,
	Args: cobra.ExactArgs(1),
	RunE: runFight,
}

func init() {
	fightCmd.Flags().BoolVar(&fightDesc, "desc", false, "newest updates first")
}

func runFight(cmd *cobra.Command, args []string) error {
	fightID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	updates, err := client.FightUpdates(fightID, true)
	if err != nil {
		return fmt.Errorf("fetch fight %s: %w", fightID, err)
	}
	if len(updates) == 0 {
		fmt.Fprintln(os.Stdout, "No updates recorded for this fight.")
		return nil
	}

	opts := timeline.Options{
		Secondary: chronicler.DamageEvents(updates),
	}
	if fightDesc {
		opts.Direction = timeline.Descending
	}
	rows := timeline.Reconcile(chronicler.Snapshots(updates), opts)

	final := &updates[len(updates)-1].Data
	fmt.Fprintf(os.Stdout, "%s %s vs. %s %s\n",
		final.AwayTeamEmoji, final.AwayTeamNickname,
		final.HomeTeamEmoji, final.HomeTeamNickname)

	report.PrintTimeline(os.Stdout, rows)
	return nil
}
