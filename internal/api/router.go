package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-restream/restream/internal/player"
)

// Controller is the narrow surface the API needs from the playback
// supervisor: enqueue commands, read a status snapshot.
type Controller interface {
	Next()
	Prev()
	Skip(video int)
	Status() player.Status
}

type ApiManagerCtx struct {
	logger zerolog.Logger
	player Controller
}

func New(player Controller) *ApiManagerCtx {
	return &ApiManagerCtx{
		logger: log.With().Str("module", "api").Logger(),
		player: player,
	}
}

func (a *ApiManagerCtx) Mount(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/control/next", a.controlNext)
		r.Get("/control/prev", a.controlPrev)
		r.Get("/control/skip/{video}", a.controlSkip)
		r.Get("/status", a.status)
	})
}

func (a *ApiManagerCtx) controlNext(w http.ResponseWriter, r *http.Request) {
	a.player.Next()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"command": "next",
	})
}

func (a *ApiManagerCtx) controlPrev(w http.ResponseWriter, r *http.Request) {
	a.player.Prev()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"command": "prev",
	})
}

func (a *ApiManagerCtx) controlSkip(w http.ResponseWriter, r *http.Request) {
	// invalid skip targets never reach the worker
	video, err := strconv.Atoi(chi.URLParam(r, "video"))
	if err != nil || video < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error",
			"error":  "invalid video number",
		})
		return
	}

	a.player.Skip(video)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"command": "skip",
		"video":   video,
	})
}

func (a *ApiManagerCtx) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.player.Status())
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
