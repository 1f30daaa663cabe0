package chronicler

import (
	"time"

	"github.com/pable/blasereplay/internal/model"
)

// FightUpdate is one archived state of a boss fight. The narrative payload
// is the same shape as a game snapshot; the fight adds boss hit points.
type FightUpdate struct {
	FightID   string    `json:"fightId"`
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`

	Data FightData `json:"data"`
}

// FightData is the fight-state payload: a game-state core plus boss HP.
type FightData struct {
	model.SnapshotData

	AwayHP    string `json:"awayHp"`
	HomeHP    string `json:"homeHp"`
	AwayMaxHP string `json:"awayMaxHp"`
	HomeMaxHP string `json:"homeMaxHp"`
}

// Snapshots reprojects fight updates onto the plain game-snapshot stream the
// reconciler consumes.
func Snapshots(fight []FightUpdate) []model.GameSnapshot {
	out := make([]model.GameSnapshot, len(fight))
	for i, f := range fight {
		out[i] = model.GameSnapshot{
			GameID:    f.FightID,
			Hash:      f.Hash,
			Timestamp: f.Timestamp,
			Data:      f.Data.SnapshotData,
		}
	}
	return out
}

// DamageEvents derives the boss-damage side channel from consecutive fight
// updates: every HP drop becomes a timestamped secondary event. HP values
// arrive as decimal strings; unparseable values are skipped rather than
// failing the fight view.
func DamageEvents(fight []FightUpdate) []model.SecondaryEvent {
	var out []model.SecondaryEvent
	lastAway, lastHome := -1.0, -1.0
	for _, f := range fight {
		away, awayOK := parseHP(f.Data.AwayHP)
		home, homeOK := parseHP(f.Data.HomeHP)
		if awayOK && lastAway >= 0 && away < lastAway {
			out = append(out, model.SecondaryEvent{
				Kind:      model.SecondaryFightDamage,
				Timestamp: f.Timestamp,
				Target:    f.Data.AwayTeamNickname,
				Damage:    int(lastAway - away),
			})
		}
		if homeOK && lastHome >= 0 && home < lastHome {
			out = append(out, model.SecondaryEvent{
				Kind:      model.SecondaryFightDamage,
				Timestamp: f.Timestamp,
				Target:    f.Data.HomeTeamNickname,
				Damage:    int(lastHome - home),
			})
		}
		if awayOK {
			lastAway = away
		}
		if homeOK {
			lastHome = home
		}
	}
	return out
}
