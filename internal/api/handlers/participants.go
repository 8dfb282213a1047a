package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gatherkit/server/internal/api/respond"
	"github.com/gatherkit/server/internal/domain/ids"
	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/gatherkit/server/internal/domain/validate"
)

type ParticipantsHandler struct {
	Service *participants.Service
	Env     string
}

func NewParticipantsHandler(service *participants.Service, env string) *ParticipantsHandler {
	return &ParticipantsHandler{Service: service, Env: env}
}

// List returns the participants of one event. eventId is mandatory: an
// unscoped list across all events is never exposed.
func (h *ParticipantsHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.URL.Query().Get("eventId"))
	if eventID == "" {
		respond.Invalid(w, r, validate.FieldErrors{"eventId": "is required"}, h.Env)
		return
	}
	if err := ids.ValidateULID(eventID); err != nil {
		respond.Invalid(w, r, validate.FieldErrors{"eventId": "must be a valid ULID"}, h.Env)
		return
	}

	items, err := h.Service.ListByEvent(r.Context(), ids.Normalize(eventID))
	if err != nil {
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"data": items})
}

func (h *ParticipantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := participantID(w, r, h.Env)
	if !ok {
		return
	}

	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, participants.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Participant not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"participant": item})
}

// Create validates the payload, then inserts the participant only after
// the referenced event is confirmed to exist; a missing event yields a
// 404 and no write.
func (h *ParticipantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input participants.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	params, err := participants.ValidateCreate(input)
	if err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	created, err := h.Service.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, participants.ErrEventNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"data":    created,
		"message": "Participant created",
	})
}

func (h *ParticipantsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := participantID(w, r, h.Env)
	if !ok {
		return
	}

	var input participants.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	params, err := participants.ValidateUpdate(input)
	if err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, participants.ErrNotFound):
			respond.Error(w, r, http.StatusNotFound, "Participant not found", err, h.Env)
		case errors.Is(err, participants.ErrEventNotFound):
			respond.Error(w, r, http.StatusNotFound, "Event not found", err, h.Env)
		default:
			respond.ServerError(w, r, err, h.Env)
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"data":    updated,
		"message": "Participant updated",
	})
}

func (h *ParticipantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := participantID(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, participants.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Participant not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"message": "Participant deleted"})
}

func participantID(w http.ResponseWriter, r *http.Request, env string) (string, bool) {
	value := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(value); err != nil {
		respond.Invalid(w, r, validate.FieldErrors{"id": "must be a valid ULID"}, env)
		return "", false
	}
	return ids.Normalize(value), true
}
