package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gatherkit/server/internal/api/respond"
	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/ids"
	"github.com/gatherkit/server/internal/domain/validate"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"events": items})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"event": item})
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input events.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	params, err := events.ValidateCreate(input)
	if err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	created, err := h.Service.Create(r.Context(), params)
	if err != nil {
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{"event": created})
}

// Update applies a partial update of name, description, and location.
// dateTime is not read from the body: every update overwrites it with
// the current time.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	var input events.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	params, err := events.ValidateUpdate(input)
	if err != nil {
		respond.Invalid(w, r, err, h.Env)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"event": updated})
}

// Delete removes the event and, by cascade, its participants.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", err, h.Env)
			return
		}
		respond.ServerError(w, r, err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"message": "Event deleted"})
}

func eventID(w http.ResponseWriter, r *http.Request, env string) (string, bool) {
	value := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(value); err != nil {
		respond.Invalid(w, r, validate.FieldErrors{"id": "must be a valid ULID"}, env)
		return "", false
	}
	return ids.Normalize(value), true
}
