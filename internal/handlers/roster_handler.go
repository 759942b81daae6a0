package handlers

import (
	"net/http"

	"emotispell/internal/models"
	"emotispell/internal/service"
)

// RosterHandler handles supervisor roster management requests
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

type createChildRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type createChildResponse struct {
	Child    accountView `json:"child"`
	Password string      `json:"password"`
}

type updateChildRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type childStatusRequest struct {
	Active bool `json:"active"`
}

type createSupervisorRequest struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateChild registers a child under the calling supervisor. The
// generated password is returned once and never again.
func (h *RosterHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	caller := AccountFromContext(r.Context())

	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	child, password, err := h.rosterService.RegisterChild(caller, req.Name, req.Contact)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, createChildResponse{
		Child:    viewFor(child),
		Password: password,
	})
}

// ListChildren returns the caller's roster. Operators see every scope.
func (h *RosterHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	caller := AccountFromContext(r.Context())

	children, err := h.rosterService.ListRoster(caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]accountView, 0, len(children))
	for i := range children {
		views = append(views, viewFor(&children[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetChild returns one roster entry.
func (h *RosterHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	child, ok := h.observableChild(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, viewFor(child))
}

// UpdateChild renames a roster entry or changes its contact.
func (h *RosterHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	child, ok := h.observableChild(w, r)
	if !ok {
		return
	}

	var req updateChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	updated, err := h.rosterService.UpdateChild(child.ID, req.Name, req.Contact)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, viewFor(updated))
}

// DeleteChild removes a child from the roster. Recorded history stays.
func (h *RosterHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	child, ok := h.observableChild(w, r)
	if !ok {
		return
	}

	if err := h.rosterService.RemoveChild(child.ID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetChildStatus enables or disables a child account.
func (h *RosterHandler) SetChildStatus(w http.ResponseWriter, r *http.Request) {
	child, ok := h.observableChild(w, r)
	if !ok {
		return
	}

	var req childStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	updated, err := h.rosterService.SetChildStatus(child.ID, req.Active)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, viewFor(updated))
}

// CreateSupervisor provisions a supervisor account. Operator only.
func (h *RosterHandler) CreateSupervisor(w http.ResponseWriter, r *http.Request) {
	caller := AccountFromContext(r.Context())

	var req createSupervisorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	supervisor, err := h.rosterService.CreateSupervisor(caller, req.Name, req.Contact, req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, viewFor(supervisor))
}

// ListSupervisors lists every supervisor account. Operator only.
func (h *RosterHandler) ListSupervisors(w http.ResponseWriter, r *http.Request) {
	supervisors, err := h.rosterService.ListSupervisors()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]accountView, 0, len(supervisors))
	for i := range supervisors {
		views = append(views, viewFor(&supervisors[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// observableChild resolves the {id} path value and enforces that the
// caller may observe that child's scope. A child outside the caller's
// scope reads as not found rather than forbidden.
func (h *RosterHandler) observableChild(w http.ResponseWriter, r *http.Request) (*models.Account, bool) {
	caller := AccountFromContext(r.Context())
	childID := r.PathValue("id")

	child, err := h.rosterService.ResolveChild(childID)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	if caller == nil || !caller.CanObserve(child.OwnerID) {
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
		return nil, false
	}
	return child, true
}
