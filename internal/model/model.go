package model

import "time"

// Default rule maximums applied when a snapshot predates the variable-rules
// era and carries zeroes for its per-side configuration.
const (
	DefaultMaxBalls   = 3
	DefaultMaxStrikes = 3
	DefaultMaxOuts    = 3
	DefaultMaxBases   = 4
)

// GameSnapshot is one archived state of a single game at a point in time, as
// recorded by the archive. Snapshots are immutable once decoded; the timeline
// reconciler only reorders, filters, and annotates them.
type GameSnapshot struct {
	GameID    string    `json:"gameId"`
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`

	Data SnapshotData `json:"data"`
}

// SnapshotData is the game-state payload inside a snapshot envelope.
type SnapshotData struct {
	Season      int    `json:"season"`
	Day         int    `json:"day"`
	SeriesIndex int    `json:"seriesIndex"`
	SimID       string `json:"sim"`
	RulesetID   string `json:"rules"`
	Weather     int    `json:"weather"`

	// PlayCount is only present in later seasons; nil means the source
	// predates the field. When present it is the authoritative ordering key.
	PlayCount *int `json:"playCount"`

	Inning      int  `json:"inning"`
	TopOfInning bool `json:"topOfInning"`

	AwayScore float64 `json:"awayScore"`
	HomeScore float64 `json:"homeScore"`

	AwayTeamName     string `json:"awayTeamName"`
	HomeTeamName     string `json:"homeTeamName"`
	AwayTeamNickname string `json:"awayTeamNickname"`
	HomeTeamNickname string `json:"homeTeamNickname"`
	AwayTeamEmoji    string `json:"awayTeamEmoji"`
	HomeTeamEmoji    string `json:"homeTeamEmoji"`

	// Batter and pitcher names are empty when nobody is up; the source emits
	// both null and "" for that state and Normalize collapses the two.
	AwayBatterName  string `json:"awayBatterName"`
	HomeBatterName  string `json:"homeBatterName"`
	AwayPitcherName string `json:"awayPitcherName"`
	HomePitcherName string `json:"homePitcherName"`

	AtBatBalls     int `json:"atBatBalls"`
	AtBatStrikes   int `json:"atBatStrikes"`
	HalfInningOuts int `json:"halfInningOuts"`

	// Per-side rule maximums; zero means "unset" upstream and is normalized
	// to the traditional configuration.
	AwayMaxBalls   int `json:"awayBalls"`
	HomeMaxBalls   int `json:"homeBalls"`
	AwayMaxStrikes int `json:"awayStrikes"`
	HomeMaxStrikes int `json:"homeStrikes"`
	AwayMaxOuts    int `json:"awayOuts"`
	HomeMaxOuts    int `json:"homeOuts"`
	AwayMaxBases   int `json:"awayBases"`
	HomeMaxBases   int `json:"homeBases"`

	// Parallel arrays addressed by the same index; a base index appears at
	// most once.
	BasesOccupied   []int    `json:"basesOccupied"`
	BaseRunners     []string `json:"baseRunners"`
	BaseRunnerNames []string `json:"baseRunnerNames"`

	LastUpdate  string   `json:"lastUpdate"`
	ScoreUpdate string   `json:"scoreUpdate"`
	Outcomes    []string `json:"outcomes"`

	Shame        bool `json:"shame"`
	GameStart    bool `json:"gameStart"`
	GameComplete bool `json:"gameComplete"`

	// StatsheetID links the game to its stat-sheet entity for box scores.
	StatsheetID string `json:"statsheet"`
}

// Normalize resolves the documented defaults for optional fields in place:
// unset rule maximums become the traditional 3-ball/3-strike/3-out/4-base
// configuration. Corrupt counts are left as-is; rendering must tolerate them.
func (d *SnapshotData) Normalize() {
	if d.AwayMaxBalls <= 0 {
		d.AwayMaxBalls = DefaultMaxBalls
	}
	if d.HomeMaxBalls <= 0 {
		d.HomeMaxBalls = DefaultMaxBalls
	}
	if d.AwayMaxStrikes <= 0 {
		d.AwayMaxStrikes = DefaultMaxStrikes
	}
	if d.HomeMaxStrikes <= 0 {
		d.HomeMaxStrikes = DefaultMaxStrikes
	}
	if d.AwayMaxOuts <= 0 {
		d.AwayMaxOuts = DefaultMaxOuts
	}
	if d.HomeMaxOuts <= 0 {
		d.HomeMaxOuts = DefaultMaxOuts
	}
	if d.AwayMaxBases <= 0 {
		d.AwayMaxBases = DefaultMaxBases
	}
	if d.HomeMaxBases <= 0 {
		d.HomeMaxBases = DefaultMaxBases
	}
}

// Play returns the monotonic play counter and whether the snapshot has one.
func (d *SnapshotData) Play() (int, bool) {
	if d.PlayCount == nil {
		return 0, false
	}
	return *d.PlayCount, true
}

// BattingTeamName returns the full name of the side currently at bat.
func (d *SnapshotData) BattingTeamName() string {
	if d.TopOfInning {
		return d.AwayTeamName
	}
	return d.HomeTeamName
}

// PitchingTeamName returns the full name of the side currently fielding.
func (d *SnapshotData) PitchingTeamName() string {
	if d.TopOfInning {
		return d.HomeTeamName
	}
	return d.AwayTeamName
}

// CurrentPitcherName returns the fielding side's pitcher, or "" if unknown.
func (d *SnapshotData) CurrentPitcherName() string {
	if d.TopOfInning {
		return d.HomePitcherName
	}
	return d.AwayPitcherName
}

// CurrentBatterName returns the batting side's batter, or "" if nobody is up.
func (d *SnapshotData) CurrentBatterName() string {
	if d.TopOfInning {
		return d.AwayBatterName
	}
	return d.HomeBatterName
}

// SecondaryKind discriminates the side-channel event streams that get merged
// into a game or fight timeline by timestamp.
type SecondaryKind int

const (
	SecondaryTemporal SecondaryKind = iota
	SecondaryFightDamage
	SecondaryPressure
)

func (k SecondaryKind) String() string {
	switch k {
	case SecondaryTemporal:
		return "temporal"
	case SecondaryFightDamage:
		return "damage"
	case SecondaryPressure:
		return "pressure"
	default:
		return "?"
	}
}

// SecondaryEvent is a timestamped record from one of the side channels. The
// payload fields used depend on Kind: Text for temporal events, Damage and
// Target for fight damage, Pressure/PressureMax for the sun-pressure gauge.
type SecondaryEvent struct {
	Kind      SecondaryKind
	Timestamp time.Time

	Text        string
	Target      string
	Damage      int
	Pressure    float64
	PressureMax float64
}

// GameSummary is a lightweight record for game listings.
type GameSummary struct {
	GameID    string     `json:"gameId"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Data      SnapshotData
}
