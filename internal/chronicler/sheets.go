package chronicler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pable/blasereplay/internal/boxscore"
)

// entitiesPage is the v2 current-entities envelope.
type entitiesPage[T any] struct {
	Items []struct {
		EntityID string `json:"entityId"`
		Data     T      `json:"data"`
	} `json:"items"`
}

func entityQuery(entityType string, ids []string) string {
	v := url.Values{}
	v.Set("type", entityType)
	v.Set("id", strings.Join(ids, ","))
	return "/v2/entities?" + v.Encode()
}

// GameSheet fetches one game stat sheet by id.
func (c *Client) GameSheet(id string, cacheable bool) (boxscore.GameSheet, error) {
	var page entitiesPage[boxscore.GameSheet]
	if err := c.get(entityQuery("gamestatsheet", []string{id}), cacheable, &page); err != nil {
		return boxscore.GameSheet{}, fmt.Errorf("game sheet %s: %w", id, err)
	}
	if len(page.Items) == 0 {
		return boxscore.GameSheet{}, fmt.Errorf("game sheet %s: not found", id)
	}
	sheet := page.Items[0].Data
	sheet.ID = page.Items[0].EntityID
	return sheet, nil
}

// TeamSheets fetches team stat sheets by id.
func (c *Client) TeamSheets(ids []string, cacheable bool) ([]boxscore.TeamSheet, error) {
	var page entitiesPage[boxscore.TeamSheet]
	if err := c.get(entityQuery("teamstatsheet", ids), cacheable, &page); err != nil {
		return nil, fmt.Errorf("team sheets: %w", err)
	}
	out := make([]boxscore.TeamSheet, 0, len(page.Items))
	for _, it := range page.Items {
		sheet := it.Data
		sheet.ID = it.EntityID
		out = append(out, sheet)
	}
	return out, nil
}

// PlayerSheets fetches player stat sheets by id, batched to keep request
// URLs inside the archive's limits.
func (c *Client) PlayerSheets(ids []string, cacheable bool) ([]boxscore.PlayerSheet, error) {
	const batch = 50
	var out []boxscore.PlayerSheet
	for start := 0; start < len(ids); start += batch {
		end := start + batch
		if end > len(ids) {
			end = len(ids)
		}
		var page entitiesPage[boxscore.PlayerSheet]
		if err := c.get(entityQuery("playerstatsheet", ids[start:end]), cacheable, &page); err != nil {
			return nil, fmt.Errorf("player sheets: %w", err)
		}
		for _, it := range page.Items {
			sheet := it.Data
			sheet.ID = it.EntityID
			out = append(out, sheet)
		}
	}
	return out, nil
}
