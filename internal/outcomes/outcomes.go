// Package outcomes classifies free-text game events into short semantic tags
// and decides which narration lines are noteworthy enough to survive the
// "important plays only" filter.
package outcomes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pable/blasereplay/internal/model"
)

// Rule maps a set of text patterns to one presentation tag. Rules are
// evaluated in declaration order; the first rule with any matching pattern
// wins regardless of later matches.
type Rule struct {
	Name     string
	Emoji    string
	Color    string
	Patterns []*regexp.Regexp
}

// Tag is the classification result for one raw string.
type Tag struct {
	Name  string
	Emoji string
	Color string
	Text  string
}

// TagGroup collects every instance of one tag name within a game.
type TagGroup struct {
	Name  string
	Emoji string
	Color string
	// Text holds the matched raw strings joined with newlines.
	Text  string
	Count int
}

func mustAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// LegacyRules classifies the short free-text outcome codes the source emitted
// in its first era. Not interchangeable with DisplayRules.
var LegacyRules = []Rule{
	{Name: "Incineration", Emoji: "\U0001F525", Color: "#ff6600", Patterns: mustAll(`incinerated`, `Rogue Umpire`)},
	{Name: "Feedback", Emoji: "\U0001F3A4", Color: "#ff007b", Patterns: mustAll(`feedback`, `switched teams`)},
	{Name: "Reverb", Emoji: "\U0001F30A", Color: "#61b3ff", Patterns: mustAll(`reverb`, `was shuffled`)},
	{Name: "Blooddrain", Emoji: "\U0001FA78", Color: "#ff1f3c", Patterns: mustAll(`blooddrain`, `siphoned`, `sippe?d`)},
	{Name: "Peanut", Emoji: "\U0001F95C", Color: "#c4aa70", Patterns: mustAll(`yummy reaction`, `allergic reaction`, `swallowed a stray peanut`)},
	{Name: "Birds", Emoji: "\U0001F426", Color: "#8e4fb5", Patterns: mustAll(`The Birds pecked`, `flock of crows`)},
	{Name: "Unstable", Emoji: "\U0001F4A5", Color: "#00dbff", Patterns: mustAll(`Unstable`, `The Instability spreads`)},
	{Name: "Chain", Emoji: "\U0001F517", Color: "#00dbff", Patterns: mustAll(`The Instability chains`)},
	{Name: "Flickering", Emoji: "⚡", Color: "#ff007b", Patterns: mustAll(`Flickering`)},
	{Name: "Partying", Emoji: "\U0001F389", Color: "#ffd700", Patterns: mustAll(`is Partying`)},
	{Name: "Shelled", Emoji: "\U0001F95C", Color: "#c4aa70", Patterns: mustAll(`tastes the infinite`, `was Shelled`)},
	{Name: "Sun 2", Emoji: "\U0001F31E", Color: "#ffd700", Patterns: mustAll(`Sun 2 smiled`, `The Sun collapsed`)},
	{Name: "Black Hole", Emoji: "⚫", Color: "#36393f", Patterns: mustAll(`Black Hole swallowed`, `The Black Hole burped`)},
	{Name: "Consumers", Emoji: "\U0001F988", Color: "#a8c6f0", Patterns: mustAll(`CONSUMERS ATTACK`, `DEFENDS`)},
	{Name: "Salmon", Emoji: "\U0001F41F", Color: "#f2762e", Patterns: mustAll(`The Salmon swim upstream`, `Inning .* began again`)},
	{Name: "Elsewhere", Emoji: "\U0001F4A8", Color: "#b266ff", Patterns: mustAll(`swept Elsewhere`, `returned from Elsewhere`)},
	{Name: "Debt", Emoji: "\U0001F4B0", Color: "#ff1f3c", Patterns: mustAll(`hits .* with a pitch`, `is now being Observed`)},
}

// DisplayRules classifies the structured display-event text of the newer
// source era. Evaluated with the same algorithm as LegacyRules but against a
// different corpus; never merge the two tables.
var DisplayRules = []Rule{
	{Name: "Incineration", Emoji: "\U0001F525", Color: "#ff6600", Patterns: mustAll(`rogue umpire incinerated`, `incinerated [\w .-]+!`)},
	{Name: "Feedback", Emoji: "\U0001F3A4", Color: "#ff007b", Patterns: mustAll(`feedback.*swap`, `entered the microphone`)},
	{Name: "Reverb", Emoji: "\U0001F30A", Color: "#61b3ff", Patterns: mustAll(`reverberations`, `hits in the reverb`)},
	{Name: "Blooddrain", Emoji: "\U0001FA78", Color: "#ff1f3c", Patterns: mustAll(`the blooddrain gurgled`, `siphons? blood`)},
	{Name: "Peanut", Emoji: "\U0001F95C", Color: "#c4aa70", Patterns: mustAll(`superallergic`, `peanut reaction`)},
	{Name: "Shelled", Emoji: "\U0001F95C", Color: "#c4aa70", Patterns: mustAll(`shelled [\w .-]+!`, `freed from (his|her|their) shell`)},
	{Name: "Consumers", Emoji: "\U0001F988", Color: "#a8c6f0", Patterns: mustAll(`consumers attack`)},
	{Name: "Echo", Emoji: "\U0001F50A", Color: "#b266ff", Patterns: mustAll(`echoed`, `became static`)},
	{Name: "Alternate", Emoji: "\U0001F300", Color: "#b266ff", Patterns: mustAll(`is now an? alternate`)},
}

// Classify tests text against the table in order and returns the first
// matching rule's tag, or nil when nothing matches. A nil result is "nothing
// to display", not an error.
func Classify(text string, rules []Rule) *Tag {
	for _, r := range rules {
		for _, p := range r.Patterns {
			if p.MatchString(text) {
				return &Tag{Name: r.Name, Emoji: r.Emoji, Color: r.Color, Text: text}
			}
		}
	}
	return nil
}

// ClassifyAll classifies each raw string, dropping misses.
func ClassifyAll(texts []string, rules []Rule) []Tag {
	var tags []Tag
	for _, t := range texts {
		if tag := Classify(t, rules); tag != nil {
			tags = append(tags, *tag)
		}
	}
	return tags
}

// GroupTags groups tags by name in first-appearance order, joining raw texts
// with newlines and counting instances.
func GroupTags(tags []Tag) []TagGroup {
	var groups []TagGroup
	index := make(map[string]int)
	for _, t := range tags {
		if i, ok := index[t.Name]; ok {
			groups[i].Text += "\n" + t.Text
			groups[i].Count++
			continue
		}
		index[t.Name] = len(groups)
		groups = append(groups, TagGroup{Name: t.Name, Emoji: t.Emoji, Color: t.Color, Text: t.Text, Count: 1})
	}
	return groups
}

// Label renders a group for display, with a count suffix past one instance.
func (g TagGroup) Label() string {
	if g.Count > 1 {
		return fmt.Sprintf("%s %s (x%d)", g.Emoji, g.Name, g.Count)
	}
	return fmt.Sprintf("%s %s", g.Emoji, g.Name)
}

// ShameTag synthesizes the Shame tag from a snapshot's shame flag, outside
// the text-matching path. Returns nil when the game was not shameful.
func ShameTag(d *model.SnapshotData) *Tag {
	if !d.Shame {
		return nil
	}
	shamed, shamer := d.HomeTeamNickname, d.AwayTeamNickname
	if d.HomeScore > d.AwayScore {
		shamed, shamer = d.AwayTeamNickname, d.HomeTeamNickname
	}
	return &Tag{
		Name:  "Shame",
		Emoji: "\U0001F633",
		Color: "#800878",
		Text:  fmt.Sprintf("The %s were shamed by the %s!", shamed, shamer),
	}
}

// importantPatterns marks the noteworthy plays: hits, steals, scoring, and
// the simulation's special events. Ordered, but order only affects which
// pattern short-circuits; the predicate is a plain any-match.
var importantPatterns = mustAll(
	`hits a (Single|Double|Triple|Quadruple)`,
	`hits a (solo|2-run|3-run|4-run) home run`,
	`hits a grand slam`,
	`home run`,
	`steals (second|third|fourth|fifth) base`,
	`steals home`,
	`scores!`,
	`tags up and scores`,
	`caught stealing`,
	`incinerated`,
	`Rogue Umpire`,
	`feedback`,
	`reverb`,
	`blooddrain`,
	`siphon`,
	`allergic reaction`,
	`yummy reaction`,
	`The Birds pecked`,
	`is Partying`,
	`tastes the infinite`,
	`Red Hot`,
	`Unstable`,
	`Flickering`,
	`The Black Hole swallowed`,
	`Sun 2 smiled`,
	`CONSUMERS ATTACK`,
	`The Salmon swim upstream`,
	`swept Elsewhere`,
	`returned from Elsewhere`,
	`swallowed a stray peanut`,
)

// IsImportant reports whether a narration line should survive important-only
// filtering. Any non-empty score-change line is unconditionally important.
func IsImportant(lastUpdate, scoreUpdate string) bool {
	if strings.TrimSpace(scoreUpdate) != "" {
		return true
	}
	for _, p := range importantPatterns {
		if p.MatchString(lastUpdate) {
			return true
		}
	}
	return false
}
