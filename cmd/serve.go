package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/chronicler"
	"github.com/pable/blasereplay/internal/history"
	"github.com/pable/blasereplay/internal/timeline"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reconciled timelines as a local JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8723", "listen address")
}

type server struct {
	client *chronicler.Client
	log    *slog.Logger
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup := newClient(cfg)
	defer cleanup()

	s := &server{
		client: client,
		log:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/games", s.handleGames)
	r.Get("/games/{gameID}/timeline", s.handleTimeline)
	r.Get("/games/{gameID}/boxscore", s.handleBoxScore)
	r.Get("/players/{playerID}/history", s.handlePlayerHistory)

	s.log.Info("listening", "addr", serveAddr)
	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *server) handleGames(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("season: %w", err))
		return
	}
	q := chronicler.GamesQuery{
		Season: season,
		Team:   r.URL.Query().Get("team"),
		Sim:    r.URL.Query().Get("sim"),
	}
	if day := r.URL.Query().Get("day"); day != "" {
		d, err := strconv.Atoi(day)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("day: %w", err))
			return
		}
		q.Day, q.HasDay = d, true
	}
	if wx := r.URL.Query().Get("weather"); wx != "" {
		id, err := strconv.Atoi(wx)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("weather: %w", err))
			return
		}
		q.Weather, q.HasWeather = id, true
	}

	games, err := s.client.Games(q)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	snaps, err := s.client.AllGameUpdates(gameID, true)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	opts := timeline.Options{
		OnlyImportant: r.URL.Query().Get("important") == "true",
	}
	if r.URL.Query().Get("order") == "desc" {
		opts.Direction = timeline.Descending
	}
	rows := timeline.Reconcile(snaps, opts)

	type rowJSON struct {
		Kind   string `json:"kind"`
		Inning int    `json:"inning"`
		Top    bool   `json:"topOfInning"`
		Play   string `json:"play,omitempty"`
		Hash   string `json:"hash,omitempty"`
	}
	out := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		rj := rowJSON{Inning: row.Inning, Top: row.TopOfInning}
		switch row.Kind {
		case timeline.RowHeader:
			rj.Kind = "header"
		case timeline.RowUpdate:
			rj.Kind = "update"
			rj.Play = row.Snapshot.Data.LastUpdate
			rj.Hash = row.Snapshot.Hash
		case timeline.RowSecondary:
			rj.Kind = row.Secondary.Kind.String()
			rj.Play = row.Secondary.Text
		}
		out = append(out, rj)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *server) handleBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	snaps, err := s.client.AllGameUpdates(gameID, true)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	if len(snaps) == 0 {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no updates for game %s", gameID))
		return
	}
	final := &snaps[len(snaps)-1].Data
	if final.StatsheetID == "" {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("game %s has no stat sheet", gameID))
		return
	}

	score, err := fetchBoxScore(s.client, final)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, score)
}

func (s *server) handlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	versions, err := s.client.PlayerVersions(playerID)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	checkpoints := history.Consolidate(versions)
	type cpJSON struct {
		FirstSeen time.Time            `json:"firstSeen"`
		LastSeen  time.Time            `json:"lastSeen"`
		State     history.DerivedState `json:"state"`
		Changed   []string             `json:"changed,omitempty"`
	}
	out := make([]cpJSON, 0, len(checkpoints))
	for i, cp := range checkpoints {
		cj := cpJSON{FirstSeen: cp.FirstSeen, LastSeen: cp.LastSeen, State: cp.State}
		if i > 0 {
			cj.Changed = history.Diff(checkpoints[i-1].State, cp.State)
		}
		out = append(out, cj)
	}
	s.writeJSON(w, http.StatusOK, out)
}
