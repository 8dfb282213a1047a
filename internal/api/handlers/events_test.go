package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/stretchr/testify/require"
)

const testEventID = "01HYX3KQW7ERTV9XNBM2P8QJZF"

type stubEventRepo struct {
	events  map[string]*events.Event
	listErr error
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: map[string]*events.Event{}}
}

func (r *stubEventRepo) List(ctx context.Context) ([]events.Event, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	items := make([]events.Event, 0, len(r.events))
	for _, e := range r.events {
		items = append(items, *e)
	}
	return items, nil
}

func (r *stubEventRepo) GetByID(ctx context.Context, id string) (*events.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *stubEventRepo) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	now := time.Now()
	e := &events.Event{
		ID:           params.ID,
		Name:         params.Name,
		Description:  params.Description,
		Location:     params.Location,
		DateTime:     params.DateTime,
		Participants: []participants.Participant{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.events[params.ID] = e
	return e, nil
}

func (r *stubEventRepo) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	if params.Name != nil {
		e.Name = *params.Name
	}
	if params.Description != nil {
		e.Description = *params.Description
	}
	if params.Location != nil {
		e.Location = *params.Location
	}
	e.DateTime = time.Now()
	e.UpdatedAt = time.Now()
	copied := *e
	return &copied, nil
}

func (r *stubEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return events.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func newEventsHandler(repo events.Repository) *EventsHandler {
	return NewEventsHandler(events.NewService(repo), "test")
}

func TestEventsCreateReturnsCreatedEvent(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	body := `{"name":"Launch party","description":"Release celebration","location":"Berlin","dateTime":"2026-09-01T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	res := httptest.NewRecorder()

	handler.Create(res, req)

	require.Equal(t, http.StatusCreated, res.Code)

	var payload struct {
		Event events.Event `json:"event"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.NotEmpty(t, payload.Event.ID)
	require.Equal(t, "Launch party", payload.Event.Name)
	require.NotNil(t, payload.Event.Participants)
}

func TestEventsCreateRejectsMissingFields(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"name":"No location"}`))
	res := httptest.NewRecorder()

	handler.Create(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)

	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "Invalid request", payload.Message)
	require.Contains(t, payload.Errors, "location")
	require.Contains(t, payload.Errors, "dateTime")
	require.Contains(t, payload.Errors, "description")
}

func TestEventsCreateRequiresDescriptionKey(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	body := `{"name":"Launch party","location":"Berlin","dateTime":"2026-09-01T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	res := httptest.NewRecorder()

	handler.Create(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "is required", payload.Errors["description"])
}

func TestEventsCreateAcceptsEmptyDescription(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	body := `{"name":"Launch party","description":"","location":"Berlin","dateTime":"2026-09-01T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	res := httptest.NewRecorder()

	handler.Create(res, req)

	require.Equal(t, http.StatusCreated, res.Code)
}

func TestEventsGetNotFound(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	res := httptest.NewRecorder()

	handler.Get(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "Event not found", payload.Message)
}

func TestEventsGetRejectsMalformedID(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/not-a-ulid", nil)
	req.SetPathValue("id", "not-a-ulid")
	res := httptest.NewRecorder()

	handler.Get(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestEventsListReturnsEnvelope(t *testing.T) {
	repo := newStubEventRepo()
	repo.events[testEventID] = &events.Event{
		ID:           testEventID,
		Name:         "Standup",
		Location:     "Room 4",
		Participants: []participants.Participant{},
	}
	handler := newEventsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	res := httptest.NewRecorder()

	handler.List(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Events []events.Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Len(t, payload.Events, 1)
	require.Equal(t, "Standup", payload.Events[0].Name)
}

func TestEventsUpdateNotFound(t *testing.T) {
	handler := newEventsHandler(newStubEventRepo())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/"+testEventID, strings.NewReader(`{"name":"Renamed"}`))
	req.SetPathValue("id", testEventID)
	res := httptest.NewRecorder()

	handler.Update(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestEventsUpdateAppliesPartialChange(t *testing.T) {
	repo := newStubEventRepo()
	repo.events[testEventID] = &events.Event{
		ID:       testEventID,
		Name:     "Standup",
		Location: "Room 4",
	}
	handler := newEventsHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/"+testEventID, strings.NewReader(`{"name":"Retro"}`))
	req.SetPathValue("id", testEventID)
	res := httptest.NewRecorder()

	handler.Update(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Event events.Event `json:"event"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "Retro", payload.Event.Name)
	require.Equal(t, "Room 4", payload.Event.Location)
	require.False(t, payload.Event.DateTime.IsZero())
}

func TestEventsDelete(t *testing.T) {
	repo := newStubEventRepo()
	repo.events[testEventID] = &events.Event{ID: testEventID, Name: "Standup"}
	handler := newEventsHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	res := httptest.NewRecorder()

	handler.Delete(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "Event deleted", payload.Message)
	require.Empty(t, repo.events)

	res = httptest.NewRecorder()
	handler.Delete(res, req)
	require.Equal(t, http.StatusNotFound, res.Code)
}
