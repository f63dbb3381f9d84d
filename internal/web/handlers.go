package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-history/internal/app"
	"github.com/jaminalder/tictactoe-history/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log zerolog.Logger
}

func (h *handlers) renderGame(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.game, "", gameData{ID: gs.ID, View: gs.Game.View(), Error: errMsg})
}

func (h *handlers) broadcast(gs app.GameState) []byte { return h.renderGame(gs, "") }

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("create game")
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.page, "base", gameData{ID: gs.ID, View: gs.Game.View()}))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(gs.Game.View())
}

func (h *handlers) load(w http.ResponseWriter, r *http.Request) (*app.GameState, bool) {
	gs, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return gs, true
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	i, ok := formInt(w, r, "i")
	if !ok {
		return
	}
	gs, err := h.svc.Move(r.Context(), chi.URLParam(r, "id"), i)
	h.respond(w, r, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	k, ok := formInt(w, r, "step")
	if !ok {
		return
	}
	gs, err := h.svc.Jump(r.Context(), chi.URLParam(r, "id"), k)
	h.respond(w, r, gs, err)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ToggleSort(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, gs, err)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Reset(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, gs, err)
}

// respond re-renders the game fragment. Domain rejections come back with the
// unchanged state and are shown inline.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, gs *app.GameState, err error) {
	var errMsg string
	if err != nil {
		if gs == nil {
			h.fail(w, r, err)
			return
		}
		switch {
		case errors.Is(err, domain.ErrOccupied):
			errMsg = "Cell is occupied"
		case errors.Is(err, domain.ErrOutOfBounds):
			errMsg = "Out of bounds"
		case errors.Is(err, domain.ErrGameOver):
			errMsg = "Game is over"
		case errors.Is(err, domain.ErrStepOutOfRange):
			errMsg = "No such move"
		default:
			errMsg = "Invalid move"
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderGame(*gs, errMsg))
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func formInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	_ = r.ParseForm()
	n, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; each payload line needs its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range strings.Split(strings.TrimSpace(string(payload)), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
