// Package weather is the static reference table for game weather types.
package weather

import (
	"errors"
	"fmt"
)

// ErrUnknown is returned for weather ids the table does not map. Callers
// decide whether to render a placeholder; nothing is logged here.
var ErrUnknown = errors.New("unknown weather id")

// Weather is one display entry of the weather table.
type Weather struct {
	ID    int
	Name  string
	Emoji string
	Color string
}

var table = map[int]Weather{
	0:  {0, "Void", "\U0001F311", "#67678a"},
	1:  {1, "Sun 2", "\U0001F31E", "#db7900"},
	2:  {2, "Overcast", "☁️", "#cfcfcf"},
	3:  {3, "Rainy", "\U0001F327", "#0727a8"},
	4:  {4, "Sandstorm", "\U0001F3DC", "#877652"},
	5:  {5, "Snowy", "❄️", "#aeb6ff"},
	6:  {6, "Acidic", "\U0001F9EA", "#92ad58"},
	7:  {7, "Solar Eclipse", "\U0001F311", "#661f8e"},
	8:  {8, "Glitter", "✨", "#ff94ff"},
	9:  {9, "Blooddrain", "\U0001FA78", "#52050f"},
	10: {10, "Peanuts", "\U0001F95C", "#c4aa70"},
	11: {11, "Birds", "\U0001F426", "#45235e"},
	12: {12, "Feedback", "\U0001F3A4", "#383838"},
	13: {13, "Reverb", "\U0001F30A", "#443561"},
	14: {14, "Black Hole", "⚫", "#000000"},
	15: {15, "Coffee", "☕", "#9a7b4f"},
	16: {16, "Coffee 2", "\U0001F375", "#44c97c"},
	17: {17, "Coffee 3s", "3️⃣", "#5fa9f1"},
	18: {18, "Flooding", "\U0001F30A", "#465f63"},
	19: {19, "Salmon", "\U0001F41F", "#ba7b97"},
	20: {20, "Polarity +", "\U0001F9F2", "#042e16"},
	21: {21, "Polarity -", "\U0001F9F2", "#3b0422"},
	23: {23, "Sun 90", "\U0001F31E", "#36001b"},
	24: {24, "Sun .1", "\U0001F31E", "#47001b"},
	25: {25, "Sum Sun", "\U0001F31E", "#58001b"},
	28: {28, "Jazz", "\U0001F3B7", "#0f592f"},
	29: {29, "Night", "\U0001F303", "#04031a"},
}

// Lookup resolves a weather id to its display entry. Unknown ids return
// ErrUnknown (wrapped with the offending id) rather than a silent fallback.
func Lookup(id int) (Weather, error) {
	w, ok := table[id]
	if !ok {
		return Weather{}, fmt.Errorf("weather %d: %w", id, ErrUnknown)
	}
	return w, nil
}
