// Package chronicler is a client for the historical Blaseball archive API:
// paged, read-only endpoints serving game snapshots and entity version
// streams. Finished-game pages are immutable upstream and may be served from
// a local cache.
package chronicler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pable/blasereplay/internal/model"
)

// DefaultBaseURL is the public archive root.
const DefaultBaseURL = "https://api.sibr.dev/chronicler"

// pageSize is the count requested per page of updates or versions.
const pageSize = 1000

// Client is a thin typed archive client. All endpoints are pure reads.
type Client struct {
	base  string
	http  *http.Client
	cache *Cache
}

// NewClient returns a client for the archive at base. cache may be nil to
// disable the finished-page cache.
func NewClient(base string, cache *Cache) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: cache,
	}
}

// get performs a GET against the archive and JSON-decodes the response body
// into out. With cacheable set, the raw body is served from and written to
// the local page cache keyed by URL.
func (c *Client) get(path string, cacheable bool, out any) error {
	full := c.base + path

	if cacheable && c.cache != nil {
		if body, ok := c.cache.Get(full); ok {
			return json.Unmarshal(body, out)
		}
	}

	resp, err := c.http.Get(full)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	if cacheable && c.cache != nil {
		// A failed cache write only costs a refetch later.
		_ = c.cache.Put(full, body)
	}
	return json.Unmarshal(body, out)
}

// GamesQuery filters the game list endpoint. Zero fields are omitted.
type GamesQuery struct {
	Season     int
	Day        int
	HasDay     bool
	Team       string
	Weather    int
	HasWeather bool
	Sim        string
}

// Games lists game summaries matching the query, newest day first within a
// season per the archive's default ordering.
func (c *Client) Games(q GamesQuery) ([]model.GameSummary, error) {
	v := url.Values{}
	v.Set("season", strconv.Itoa(q.Season))
	if q.HasDay {
		v.Set("day", strconv.Itoa(q.Day))
	}
	if q.Team != "" {
		v.Set("team", q.Team)
	}
	if q.HasWeather {
		v.Set("weather", strconv.Itoa(q.Weather))
	}
	if q.Sim != "" {
		v.Set("sim", q.Sim)
	}

	var resp struct {
		Data []struct {
			GameID    string             `json:"gameId"`
			StartTime *time.Time         `json:"startTime"`
			EndTime   *time.Time         `json:"endTime"`
			Data      model.SnapshotData `json:"data"`
		} `json:"data"`
	}
	if err := c.get("/v1/games?"+v.Encode(), false, &resp); err != nil {
		return nil, err
	}

	out := make([]model.GameSummary, 0, len(resp.Data))
	for _, g := range resp.Data {
		g.Data.Normalize()
		out = append(out, model.GameSummary{
			GameID:    g.GameID,
			StartTime: g.StartTime,
			EndTime:   g.EndTime,
			Data:      g.Data,
		})
	}
	return out, nil
}

// updatesPage is the v1 paged envelope for game and fight update streams.
type updatesPage struct {
	NextPage string               `json:"nextPage"`
	Data     []model.GameSnapshot `json:"data"`
}

// GameUpdates fetches one page of a game's snapshot stream from the given
// cursor. Returns the snapshots and the continuation cursor ("" at the end).
func (c *Client) GameUpdates(gameID, after string, cacheable bool) ([]model.GameSnapshot, string, error) {
	v := url.Values{}
	v.Set("game", gameID)
	v.Set("count", strconv.Itoa(pageSize))
	if after != "" {
		v.Set("page", after)
	}

	var page updatesPage
	if err := c.get("/v1/games/updates?"+v.Encode(), cacheable, &page); err != nil {
		return nil, "", fmt.Errorf("game %s updates: %w", gameID, err)
	}
	for i := range page.Data {
		page.Data[i].Data.Normalize()
	}
	if len(page.Data) < pageSize {
		return page.Data, "", nil
	}
	return page.Data, page.NextPage, nil
}

// AllGameUpdates follows the cursor until exhaustion and returns the full
// snapshot stream in arrival order. Exact duplicates across page boundaries
// are preserved; deduplication belongs to reconciliation.
func (c *Client) AllGameUpdates(gameID string, cacheable bool) ([]model.GameSnapshot, error) {
	var all []model.GameSnapshot
	after := ""
	for {
		snaps, next, err := c.GameUpdates(gameID, after, cacheable)
		if err != nil {
			return nil, err
		}
		all = append(all, snaps...)
		if next == "" {
			return all, nil
		}
		after = next
	}
}

// FightUpdates fetches the full update stream for a boss fight.
func (c *Client) FightUpdates(fightID string, cacheable bool) ([]FightUpdate, error) {
	var all []FightUpdate
	after := ""
	for {
		v := url.Values{}
		v.Set("fight", fightID)
		v.Set("count", strconv.Itoa(pageSize))
		if after != "" {
			v.Set("page", after)
		}
		var page struct {
			NextPage string        `json:"nextPage"`
			Data     []FightUpdate `json:"data"`
		}
		if err := c.get("/v1/fights/updates?"+v.Encode(), cacheable, &page); err != nil {
			return nil, fmt.Errorf("fight %s updates: %w", fightID, err)
		}
		for i := range page.Data {
			page.Data[i].Data.Normalize()
		}
		all = append(all, page.Data...)
		if len(page.Data) < pageSize || page.NextPage == "" {
			return all, nil
		}
		after = page.NextPage
	}
}

// versionsPage is the v2 envelope: {entityId, validFrom, validTo, data}
// tuples instead of the v1 {gameId, hash, timestamp, data} shape.
type versionsPage[T any] struct {
	NextPage string `json:"nextPage"`
	Items    []struct {
		EntityID  string     `json:"entityId"`
		ValidFrom time.Time  `json:"validFrom"`
		ValidTo   *time.Time `json:"validTo"`
		Data      T          `json:"data"`
	} `json:"items"`
}

// PlayerVersions fetches a player's full version stream, oldest first.
func (c *Client) PlayerVersions(playerID string) ([]model.PlayerVersion, error) {
	var all []model.PlayerVersion
	after := ""
	for {
		v := url.Values{}
		v.Set("type", "player")
		v.Set("id", playerID)
		v.Set("order", "asc")
		v.Set("count", strconv.Itoa(pageSize))
		if after != "" {
			v.Set("page", after)
		}
		var page versionsPage[model.PlayerSnapshot]
		if err := c.get("/v2/versions?"+v.Encode(), false, &page); err != nil {
			return nil, fmt.Errorf("player %s versions: %w", playerID, err)
		}
		for _, it := range page.Items {
			all = append(all, model.PlayerVersion{
				EntityID:  it.EntityID,
				ValidFrom: it.ValidFrom,
				ValidTo:   it.ValidTo,
				Data:      it.Data,
			})
		}
		if len(page.Items) < pageSize || page.NextPage == "" {
			return all, nil
		}
		after = page.NextPage
	}
}

// Temporal fetches world-event text versions overlapping [from, to] as
// secondary events for timeline merging.
func (c *Client) Temporal(from, to time.Time) ([]model.SecondaryEvent, error) {
	v := url.Values{}
	v.Set("type", "temporal")
	v.Set("order", "asc")
	v.Set("after", from.Format(time.RFC3339))
	v.Set("before", to.Format(time.RFC3339))
	v.Set("count", strconv.Itoa(pageSize))

	var page versionsPage[struct {
		Doc struct {
			Zeta string `json:"zeta"`
		} `json:"doc"`
	}]
	if err := c.get("/v2/versions?"+v.Encode(), false, &page); err != nil {
		return nil, fmt.Errorf("temporal versions: %w", err)
	}

	var out []model.SecondaryEvent
	for _, it := range page.Items {
		if it.Data.Doc.Zeta == "" {
			continue
		}
		out = append(out, model.SecondaryEvent{
			Kind:      model.SecondaryTemporal,
			Timestamp: it.ValidFrom,
			Text:      it.Data.Doc.Zeta,
		})
	}
	return out, nil
}

// SunPressure fetches the world pressure-gauge versions overlapping
// [from, to] as secondary events.
func (c *Client) SunPressure(from, to time.Time) ([]model.SecondaryEvent, error) {
	v := url.Values{}
	v.Set("type", "sunsun")
	v.Set("order", "asc")
	v.Set("after", from.Format(time.RFC3339))
	v.Set("before", to.Format(time.RFC3339))
	v.Set("count", strconv.Itoa(pageSize))

	var page versionsPage[struct {
		Current float64 `json:"current"`
		Maximum float64 `json:"maximum"`
	}]
	if err := c.get("/v2/versions?"+v.Encode(), false, &page); err != nil {
		return nil, fmt.Errorf("pressure versions: %w", err)
	}

	var out []model.SecondaryEvent
	for _, it := range page.Items {
		out = append(out, model.SecondaryEvent{
			Kind:        model.SecondaryPressure,
			Timestamp:   it.ValidFrom,
			Pressure:    it.Data.Current,
			PressureMax: it.Data.Maximum,
		})
	}
	return out, nil
}
