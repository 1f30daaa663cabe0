// Package stats holds the closed-form calculators that turn a raw player
// stat vector into display quantities: skill scores, star ratings, vibes,
// and the soul-scream string. Everything here is deterministic and stateless.
package stats

import (
	"math"
	"strings"

	"github.com/pable/blasereplay/internal/model"
)

// BattingSkill is a weighted geometric product over eight batting components.
// The buoyancy^0 term is a no-op kept for parity with the published formula;
// tragicness and patheticism count inverted because lower is better.
func BattingSkill(a model.Attributes) float64 {
	return math.Pow(1-a.Tragicness, 0.01) *
		math.Pow(a.Buoyancy, 0) *
		math.Pow(a.Thwackability, 0.35) *
		math.Pow(a.Moxie, 0.075) *
		math.Pow(a.Divinity, 0.35) *
		math.Pow(a.Musclitude, 0.075) *
		math.Pow(1-a.Patheticism, 0.05) *
		math.Pow(a.Martyrdom, 0.02)
}

// PitchingSkill is a weighted geometric product over six pitching components.
// The suppression^0 term is a no-op kept for parity with the published formula.
func PitchingSkill(a model.Attributes) float64 {
	return math.Pow(a.Unthwackability, 0.5) *
		math.Pow(a.Ruthlessness, 0.4) *
		math.Pow(a.Overpowerment, 0.15) *
		math.Pow(a.Shakespearianism, 0.1) *
		math.Pow(a.Suppression, 0) *
		math.Pow(a.Coldness, 0.025)
}

// BaserunningSkill is a weighted geometric product over five components.
func BaserunningSkill(a model.Attributes) float64 {
	return math.Pow(a.Laserlikeness, 0.5) *
		math.Pow(a.Continuation, 0.1) *
		math.Pow(a.BaseThirst, 0.1) *
		math.Pow(a.Indulgence, 0.1) *
		math.Pow(a.GroundFriction, 0.1)
}

// DefenseSkill is a weighted geometric product over five components.
func DefenseSkill(a model.Attributes) float64 {
	return math.Pow(a.Omniscience, 0.2) *
		math.Pow(a.Tenaciousness, 0.2) *
		math.Pow(a.Watchfulness, 0.1) *
		math.Pow(a.Anticapitalism, 0.1) *
		math.Pow(a.Chasiness, 0.1)
}

// Stars converts a 0..1 skill scalar to a 0–5 star rating. When rounded, the
// result snaps to the nearest half star via round(skill*10)/2.
func Stars(skill float64, rounded bool) float64 {
	if rounded {
		return math.Round(skill*10) / 2
	}
	return skill * 5
}

// Vibe returns the player's vibe for a day of the season: a sinusoid whose
// amplitude comes from pressurization and cinnamon and whose frequency comes
// from buoyancy. Always ≤ 0 at day 0 and oscillates in [-2*offset, 0].
func Vibe(a model.Attributes, day int) float64 {
	offset := 0.5 * (a.Pressurization + a.Cinnamon)
	frequency := 6 + math.Round(10*a.Buoyancy)
	phase := math.Pi * (2 / frequency) * float64(day)
	return offset*math.Cos(phase) - offset
}

// VibeCategory is one display bucket of the vibe scale.
type VibeCategory struct {
	Text string
	// Arrows is positive for up-arrows, negative for down-arrows, 0 neutral.
	Arrows int
	// Threshold is the exclusive lower bound for the bucket. A zero
	// threshold reads as "no threshold" (catch-all); the Neutral bucket
	// therefore uses -0.1, never 0. This falsy-zero reading matches the
	// original viewer and is pinned in tests.
	Threshold float64
}

// vibeCategories is walked from highest threshold to lowest; the final
// bucket is the catch-all.
var vibeCategories = []VibeCategory{
	{Text: "Most Excellent", Arrows: 3, Threshold: 0.8},
	{Text: "Excellent", Arrows: 2, Threshold: 0.4},
	{Text: "Quality", Arrows: 1, Threshold: 0.1},
	{Text: "Neutral", Arrows: 0, Threshold: -0.1},
	{Text: "Less Than Ideal", Arrows: -1, Threshold: -0.4},
	{Text: "Far Less Than Ideal", Arrows: -2, Threshold: -0.8},
	{Text: "Honestly Terrible", Arrows: -3},
}

// GetVibeCategory returns the display bucket for a vibe value: the first
// bucket whose threshold is unset or exceeded.
func GetVibeCategory(vibe float64) VibeCategory {
	for _, c := range vibeCategories {
		if c.Threshold == 0 || vibe > c.Threshold {
			return c
		}
	}
	return vibeCategories[len(vibeCategories)-1]
}

// soulScreamAlphabet maps a decimal digit 0–9 to a scream character.
const soulScreamAlphabet = "AEIOUXHAEI"

// soulScreamStats are cycled per character slot, index mod 5.
func soulScreamStats(a model.Attributes) [5]float64 {
	return [5]float64{
		a.Pressurization,
		a.Divinity,
		a.Tragicness,
		a.Shakespearianism,
		a.Ruthlessness,
	}
}

// SoulScream deterministically generates the player's scream: one block of 11
// characters per point of soul, reading successively deeper decimal digits of
// five cycled stats. Identical inputs reproduce the string bit for bit.
func SoulScream(a model.Attributes) string {
	cycle := soulScreamStats(a)
	var b strings.Builder
	b.Grow(a.Soul * 11)
	for pos := 0; pos < a.Soul; pos++ {
		scale := math.Pow(10, -float64(pos))
		for slot := 0; slot < 11; slot++ {
			stat := cycle[slot%5]
			digit := int(math.Floor(math.Mod(stat, scale) / scale * 10))
			if digit < 0 {
				digit = 0
			}
			if digit > 9 {
				digit = 9
			}
			b.WriteByte(soulScreamAlphabet[digit])
		}
	}
	return b.String()
}
