package model

import (
	"encoding/json"
	"time"
)

// Attributes is a player's raw stat vector. All values are normalized 0..1
// floats except Soul, Fate, and the flavor indices.
type Attributes struct {
	// Batting
	Buoyancy      float64 `json:"buoyancy"`
	Divinity      float64 `json:"divinity"`
	Martyrdom     float64 `json:"martyrdom"`
	Moxie         float64 `json:"moxie"`
	Musclitude    float64 `json:"musclitude"`
	Patheticism   float64 `json:"patheticism"`
	Thwackability float64 `json:"thwackability"`
	Tragicness    float64 `json:"tragicness"`

	// Pitching
	Coldness         float64 `json:"coldness"`
	Overpowerment    float64 `json:"overpowerment"`
	Ruthlessness     float64 `json:"ruthlessness"`
	Shakespearianism float64 `json:"shakespearianism"`
	Suppression      float64 `json:"suppression"`
	Unthwackability  float64 `json:"unthwackability"`

	// Baserunning
	BaseThirst     float64 `json:"baseThirst"`
	Continuation   float64 `json:"continuation"`
	GroundFriction float64 `json:"groundFriction"`
	Indulgence     float64 `json:"indulgence"`
	Laserlikeness  float64 `json:"laserlikeness"`

	// Defense
	Anticapitalism float64 `json:"anticapitalism"`
	Chasiness      float64 `json:"chasiness"`
	Omniscience    float64 `json:"omniscience"`
	Tenaciousness  float64 `json:"tenaciousness"`
	Watchfulness   float64 `json:"watchfulness"`

	// Vibes
	Pressurization float64 `json:"pressurization"`
	Cinnamon       float64 `json:"cinnamon"`

	Soul int `json:"soul"`
	Fate int `json:"fate"`
}

// ModifierVariant tags which field-name era a player payload used for its
// modifier lists.
type ModifierVariant int

const (
	// ModifiersNone means the payload carried no modifier lists at all
	// (pre-modification seasons).
	ModifiersNone ModifierVariant = iota
	// ModifiersV1 is the abbreviated era: permAttr/seasAttr/weekAttr/gameAttr.
	ModifiersV1
	// ModifiersV2 is the spelled-out era: permanentAttributes etc.
	ModifiersV2
)

// Modifiers holds a player's modification lists as a tagged variant instead
// of optional-field probing at every call site. Use All for display.
type Modifiers struct {
	Variant   ModifierVariant
	Permanent []string
	Seasonal  []string
	Weekly    []string
	Game      []string
}

// All returns every modification in permanent, seasonal, weekly, game order.
func (m Modifiers) All() []string {
	out := make([]string, 0, len(m.Permanent)+len(m.Seasonal)+len(m.Weekly)+len(m.Game))
	out = append(out, m.Permanent...)
	out = append(out, m.Seasonal...)
	out = append(out, m.Weekly...)
	out = append(out, m.Game...)
	return out
}

// UnmarshalJSON decodes either modifier-field era into the tagged form. V2
// names win when both are present, which the source never actually emits.
func (m *Modifiers) UnmarshalJSON(b []byte) error {
	var probe struct {
		PermAttr []string `json:"permAttr"`
		SeasAttr []string `json:"seasAttr"`
		WeekAttr []string `json:"weekAttr"`
		GameAttr []string `json:"gameAttr"`

		PermanentAttributes []string `json:"permanentAttributes"`
		SeasonalAttributes  []string `json:"seasonalAttributes"`
		WeeklyAttributes    []string `json:"weeklyAttributes"`
		GameAttributes      []string `json:"gameAttributes"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	switch {
	case probe.PermanentAttributes != nil || probe.SeasonalAttributes != nil ||
		probe.WeeklyAttributes != nil || probe.GameAttributes != nil:
		*m = Modifiers{
			Variant:   ModifiersV2,
			Permanent: probe.PermanentAttributes,
			Seasonal:  probe.SeasonalAttributes,
			Weekly:    probe.WeeklyAttributes,
			Game:      probe.GameAttributes,
		}
	case probe.PermAttr != nil || probe.SeasAttr != nil ||
		probe.WeekAttr != nil || probe.GameAttr != nil:
		*m = Modifiers{
			Variant:   ModifiersV1,
			Permanent: probe.PermAttr,
			Seasonal:  probe.SeasAttr,
			Weekly:    probe.WeekAttr,
			Game:      probe.GameAttr,
		}
	default:
		*m = Modifiers{Variant: ModifiersNone}
	}
	return nil
}

// PlayerSnapshot is a player's full archived state at a point in time.
type PlayerSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Attributes

	Ritual    string `json:"ritual"`
	Evolution int    `json:"evolution"`
	Coffee    *int   `json:"coffee"`
	Blood     *int   `json:"blood"`

	Bat   string `json:"bat"`
	Armor string `json:"armor"`

	// mods is kept behind the Modifications accessor so call sites never
	// probe era-specific field names.
	mods Modifiers
}

// UnmarshalJSON decodes a player payload, pulling the flat fields and the
// era-dependent modifier lists out of the same object.
func (p *PlayerSnapshot) UnmarshalJSON(b []byte) error {
	type plain PlayerSnapshot
	if err := json.Unmarshal(b, (*plain)(p)); err != nil {
		return err
	}
	return json.Unmarshal(b, &p.mods)
}

// Modifications returns the player's modifier lists in normalized form,
// whichever field-name era the payload used.
func (p *PlayerSnapshot) Modifications() Modifiers { return p.mods }

// PlayerVersion is one entry of a player's version stream: the state plus
// the validity window the archive observed it over.
type PlayerVersion struct {
	EntityID  string         `json:"entityId"`
	ValidFrom time.Time      `json:"validFrom"`
	ValidTo   *time.Time     `json:"validTo"`
	Data      PlayerSnapshot `json:"data"`
}
