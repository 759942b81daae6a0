package handlers

import (
	"net/http"

	"emotispell/internal/models"
	"emotispell/internal/service"
)

// IngestHandler handles event ingestion and per-child history requests
type IngestHandler struct {
	ingestService *service.IngestService
	rosterService *service.RosterService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestService *service.IngestService, rosterService *service.RosterService) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		rosterService: rosterService,
	}
}

type recordEmotionRequest struct {
	ChildID  string `json:"childId"`
	Label    string `json:"label"`
	Question string `json:"question"`
}

type recordReportRequest struct {
	ChildID   string   `json:"childId"`
	Score     int      `json:"score"`
	Emotions  []string `json:"emotions"`
	Question  string   `json:"question"`
	IsCorrect bool     `json:"isCorrect"`
}

// RecordEmotion ingests one classifier sample for a child.
func (h *IngestHandler) RecordEmotion(w http.ResponseWriter, r *http.Request) {
	var req recordEmotionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	childID, ok := h.writableChildID(w, r, req.ChildID)
	if !ok {
		return
	}

	sample, err := h.ingestService.RecordEmotion(childID, req.Label, req.Question)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sample)
}

// RecordReport ingests one game round result for a child.
func (h *IngestHandler) RecordReport(w http.ResponseWriter, r *http.Request) {
	var req recordReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	childID, ok := h.writableChildID(w, r, req.ChildID)
	if !ok {
		return
	}

	report, err := h.ingestService.RecordGameReport(childID, req.Score, req.Emotions, req.Question, req.IsCorrect)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

// EmotionHistory returns a child's emotion samples in arrival order.
func (h *IngestHandler) EmotionHistory(w http.ResponseWriter, r *http.Request) {
	childID, ok := h.readableChildID(w, r)
	if !ok {
		return
	}

	samples, err := h.ingestService.EmotionHistory(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, samples)
}

// GameHistory returns a child's game reports in arrival order.
func (h *IngestHandler) GameHistory(w http.ResponseWriter, r *http.Request) {
	childID, ok := h.readableChildID(w, r)
	if !ok {
		return
	}

	reports, err := h.ingestService.GameHistory(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// writableChildID decides which child an ingest request writes to. A
// child account always writes its own stream; supervisors and
// operators may write for children in their scope.
func (h *IngestHandler) writableChildID(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	caller := AccountFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return "", false
	}

	if caller.Role == models.RoleChild {
		if requested != "" && requested != caller.ID {
			respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
			return "", false
		}
		return caller.ID, true
	}

	if requested == "" {
		respondWithError(w, http.StatusBadRequest, "childId is required", "", nil)
		return "", false
	}
	return h.observe(w, caller, requested)
}

// readableChildID resolves the {id} path value for history reads. A
// child may read its own history; observers need scope over the child.
func (h *IngestHandler) readableChildID(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := AccountFromContext(r.Context())
	childID := r.PathValue("id")
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return "", false
	}

	if caller.Role == models.RoleChild {
		if childID != caller.ID {
			respondWithError(w, http.StatusNotFound, "Not found", "", nil)
			return "", false
		}
		return childID, true
	}
	return h.observe(w, caller, childID)
}

func (h *IngestHandler) observe(w http.ResponseWriter, caller *models.Account, childID string) (string, bool) {
	child, err := h.rosterService.ResolveChild(childID)
	if err != nil {
		respondServiceError(w, err)
		return "", false
	}
	if !caller.CanObserve(child.OwnerID) {
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
		return "", false
	}
	return child.ID, true
}
