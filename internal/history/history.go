// Package history consolidates a player's version stream into checkpoints:
// maximal time ranges over which the derived display state did not change,
// plus field-level diffs between consecutive checkpoints.
package history

import (
	"time"

	"github.com/pable/blasereplay/internal/model"
	"github.com/pable/blasereplay/internal/stats"
)

// DerivedState is the display-facing projection of one player version. Two
// versions with equal derived states render identically even if underlying
// raw stats fluctuated, so equality here is what delimits checkpoints.
type DerivedState struct {
	Name string

	BattingStars     float64
	PitchingStars    float64
	BaserunningStars float64
	DefenseStars     float64

	Item      string
	Armor     string
	Evolution int
	Ritual    string
	Coffee    string
	Blood     string
	Fate      int

	SoulScream string
}

// Derive projects one player snapshot into its display state. Star ratings
// are the rounded (half-star) form, matching what the player page renders.
func Derive(p *model.PlayerSnapshot) DerivedState {
	return DerivedState{
		Name:             p.Name,
		BattingStars:     stats.Stars(stats.BattingSkill(p.Attributes), true),
		PitchingStars:    stats.Stars(stats.PitchingSkill(p.Attributes), true),
		BaserunningStars: stats.Stars(stats.BaserunningSkill(p.Attributes), true),
		DefenseStars:     stats.Stars(stats.DefenseSkill(p.Attributes), true),
		Item:             p.Bat,
		Armor:            p.Armor,
		Evolution:        p.Evolution,
		Ritual:           p.Ritual,
		Coffee:           model.CoffeeStyle(p.Coffee),
		Blood:            model.BloodType(p.Blood),
		Fate:             p.Fate,
		SoulScream:       stats.SoulScream(p.Attributes),
	}
}

// Checkpoint is one consolidated range of a player's history.
type Checkpoint struct {
	FirstSeen time.Time
	LastSeen  time.Time
	State     DerivedState
	// Version is the first raw version of the range, kept for rendering
	// detail the derived state does not carry.
	Version model.PlayerVersion
}

// Consolidate folds a version stream in input order: an update whose derived
// state equals the open checkpoint's extends its LastSeen; any structural
// difference opens a new checkpoint. Empty input yields an empty list, a
// valid "no data yet" state.
func Consolidate(versions []model.PlayerVersion) []Checkpoint {
	var out []Checkpoint
	for _, v := range versions {
		state := Derive(&v.Data)
		seen := v.ValidFrom
		if len(out) > 0 && out[len(out)-1].State == state {
			out[len(out)-1].LastSeen = seen
			continue
		}
		out = append(out, Checkpoint{
			FirstSeen: seen,
			LastSeen:  seen,
			State:     state,
			Version:   v,
		})
	}
	return out
}

// diffFields is the fixed, documented field order Diff reports in.
var diffFields = []struct {
	name string
	get  func(DerivedState) any
}{
	{"name", func(s DerivedState) any { return s.Name }},
	{"batting stars", func(s DerivedState) any { return s.BattingStars }},
	{"pitching stars", func(s DerivedState) any { return s.PitchingStars }},
	{"baserunning stars", func(s DerivedState) any { return s.BaserunningStars }},
	{"defense stars", func(s DerivedState) any { return s.DefenseStars }},
	{"item", func(s DerivedState) any { return s.Item }},
	{"armor", func(s DerivedState) any { return s.Armor }},
	{"evolution", func(s DerivedState) any { return s.Evolution }},
	{"ritual", func(s DerivedState) any { return s.Ritual }},
	{"coffee", func(s DerivedState) any { return s.Coffee }},
	{"blood", func(s DerivedState) any { return s.Blood }},
	{"fate", func(s DerivedState) any { return s.Fate }},
	{"soulscream", func(s DerivedState) any { return s.SoulScream }},
}

// Diff returns the names of fields whose value differs between two derived
// states, in fixed order. An empty result means "no visible change"; "first
// seen" is signaled out of band by the absence of a previous checkpoint.
func Diff(prev, next DerivedState) []string {
	var changed []string
	for _, f := range diffFields {
		if f.get(prev) != f.get(next) {
			changed = append(changed, f.name)
		}
	}
	return changed
}
