package handlers

import (
	"errors"
	"net/http"

	"emotispell/internal/puzzle"
)

// GameHandler drives server-side word puzzle sessions for child clients
type GameHandler struct {
	registry *puzzle.Registry
	recorder puzzle.Recorder
	opts     puzzle.Options
}

// NewGameHandler creates a new game handler
func NewGameHandler(registry *puzzle.Registry, recorder puzzle.Recorder, opts puzzle.Options) *GameHandler {
	return &GameHandler{
		registry: registry,
		recorder: recorder,
		opts:     opts,
	}
}

type tickRequest struct {
	Label string `json:"label"`
}

type placeLetterRequest struct {
	Letter string `json:"letter"`
	Slot   int    `json:"slot"`
}

type placeLetterResponse struct {
	Outcome  puzzle.Outcome  `json:"outcome"`
	Snapshot puzzle.Snapshot `json:"snapshot"`
}

// Start begins a fresh session for the calling child, replacing any
// session already in the registry.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	child := AccountFromContext(r.Context())

	session := puzzle.NewSession(child.ID, h.recorder, h.opts)
	snapshot := session.Start()
	h.registry.Put(child.ID, session)

	respondJSON(w, http.StatusOK, snapshot)
}

// State returns the calling child's current session view.
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Tick buffers one emotion label against the in-progress question.
func (h *GameHandler) Tick(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req tickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := session.Tick(req.Label); err != nil {
		respondGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PlaceLetter fills one slot and returns the evaluation outcome.
func (h *GameHandler) PlaceLetter(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req placeLetterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	outcome, err := session.PlaceLetter(req.Letter, req.Slot)
	if err != nil {
		respondGameError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, placeLetterResponse{
		Outcome:  outcome,
		Snapshot: session.Snapshot(),
	})
}

// Quit discards the calling child's session.
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	child := AccountFromContext(r.Context())
	h.registry.Remove(child.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*puzzle.Session, bool) {
	child := AccountFromContext(r.Context())
	session := h.registry.Get(child.ID)
	if session == nil {
		respondWithError(w, http.StatusNotFound, "No active game session", "", nil)
		return nil, false
	}
	return session, true
}

func respondGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, puzzle.ErrNotInProgress):
		respondWithError(w, http.StatusConflict, "Game is not in progress", "", nil)
	case errors.Is(err, puzzle.ErrInvalidSlot), errors.Is(err, puzzle.ErrInvalidLetter):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	default:
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	}
}
