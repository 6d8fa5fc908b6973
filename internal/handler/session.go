package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

// SessionHandler handles HTTP requests for generation sessions.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleCreate handles POST /api/v1/sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.SessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/sessions/{session_id} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PATCH /api/v1/sessions/{session_id} requests.
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req model.SessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRegenerate handles POST /api/v1/sessions/{session_id}/regenerate requests.
func (h *SessionHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Regenerate(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/sessions/{session_id} requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "session_id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid session id"))
		return "", false
	}
	return id, true
}

// Routes mounts the session endpoints on r.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Post("/", h.HandleCreate)
	r.Get("/{session_id}", h.HandleGet)
	r.Patch("/{session_id}", h.HandleUpdate)
	r.Post("/{session_id}/regenerate", h.HandleRegenerate)
	r.Delete("/{session_id}", h.HandleDelete)
}
