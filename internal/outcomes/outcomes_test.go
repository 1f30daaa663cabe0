package outcomes

import (
	"strings"
	"testing"

	"github.com/pable/blasereplay/internal/model"
)

func TestClassifyFirstMatchWins(t *testing.T) {
	// "Unstable" precedes "Chain" in the table; a line matching only the
	// chain pattern must fall through to the Chain rule.
	tag := Classify("The Instability chains to Wyatt Mason!", LegacyRules)
	if tag == nil {
		t.Fatal("expected a tag for an instability chain line")
	}
	if tag.Name != "Chain" {
		t.Errorf("expected Chain, got %s", tag.Name)
	}
	if tag.Emoji != "\U0001F517" {
		t.Errorf("expected link emoji, got %q", tag.Emoji)
	}
}

func TestClassifyUnstableBeforeChain(t *testing.T) {
	tag := Classify("The Instability spreads to Sutton Dreamy!", LegacyRules)
	if tag == nil {
		t.Fatal("expected a tag")
	}
	if tag.Name != "Unstable" {
		t.Errorf("expected Unstable to win by table order, got %s", tag.Name)
	}
}

func TestClassifyMissReturnsNil(t *testing.T) {
	if tag := Classify("Boring Flyout", LegacyRules); tag != nil {
		t.Errorf("expected nil for unmatched text, got %+v", tag)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	const line = "Rogue Umpire incinerated Jaylen Hotdogfingers!"
	first := Classify(line, LegacyRules)
	if first == nil {
		t.Fatal("expected a tag")
	}
	for i := 0; i < 10; i++ {
		again := Classify(line, LegacyRules)
		if again == nil || again.Name != first.Name {
			t.Fatalf("classification not stable on pass %d", i)
		}
	}
	if first.Name != "Incineration" {
		t.Errorf("expected Incineration, got %s", first.Name)
	}
}

func TestDisplayRulesAreSeparate(t *testing.T) {
	// Legacy-era text must not leak matches through the display table.
	if tag := Classify("swallowed a stray peanut", DisplayRules); tag != nil {
		t.Errorf("expected no display-era match, got %s", tag.Name)
	}
	tag := Classify("A rogue umpire incinerated the mound!", DisplayRules)
	if tag == nil || tag.Name != "Incineration" {
		t.Errorf("expected display-era Incineration, got %+v", tag)
	}
}

func TestGroupTagsCountsAndOrder(t *testing.T) {
	tags := ClassifyAll([]string{
		"Rogue Umpire incinerated Chorby Soul!",
		"reverb! The lineup was shuffled!",
		"Rogue Umpire incinerated Scrap Murphy!",
	}, LegacyRules)

	groups := GroupTags(tags)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Incineration" || groups[1].Name != "Reverb" {
		t.Errorf("expected first-appearance order, got %s then %s", groups[0].Name, groups[1].Name)
	}
	if groups[0].Count != 2 {
		t.Errorf("expected 2 incinerations, got %d", groups[0].Count)
	}
	if lines := strings.Split(groups[0].Text, "\n"); len(lines) != 2 {
		t.Errorf("expected 2 joined lines, got %d", len(lines))
	}
}

func TestGroupLabelCountSuffix(t *testing.T) {
	one := TagGroup{Name: "Feedback", Emoji: "\U0001F3A4", Count: 1}
	if got := one.Label(); strings.Contains(got, "(x") {
		t.Errorf("single instance must not carry a count suffix: %q", got)
	}
	two := TagGroup{Name: "Feedback", Emoji: "\U0001F3A4", Count: 3}
	if got := two.Label(); !strings.HasSuffix(got, "(x3)") {
		t.Errorf("expected (x3) suffix, got %q", got)
	}
}

func TestShameTag(t *testing.T) {
	d := &model.SnapshotData{
		Shame:            true,
		AwayTeamNickname: "Tigers",
		HomeTeamNickname: "Crabs",
		AwayScore:        2,
		HomeScore:        11,
	}
	tag := ShameTag(d)
	if tag == nil {
		t.Fatal("expected a shame tag")
	}
	if tag.Text != "The Tigers were shamed by the Crabs!" {
		t.Errorf("unexpected shame text: %q", tag.Text)
	}

	d.Shame = false
	if ShameTag(d) != nil {
		t.Error("expected nil when the game was not shameful")
	}
}

func TestIsImportant(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"John Doe hits a solo home run!", true},
		{"Dominic Marijuana hits a 2-run home run!", true},
		{"York Silk hits a Double!", true},
		{"Esme Ramsey steals second base!", true},
		{"Ball. 1-0", false},
		{"Strike, looking. 0-2", false},
		{"Wyatt Quitter batting for the Lift.", false},
	}
	for _, c := range cases {
		if got := IsImportant(c.line, ""); got != c.want {
			t.Errorf("IsImportant(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestScoreUpdateAlwaysImportant(t *testing.T) {
	if !IsImportant("nothing notable", "2 Runs scored!") {
		t.Error("expected any score update to be important")
	}
	if IsImportant("nothing notable", "   ") {
		t.Error("expected blank score update to be ignored")
	}
}
