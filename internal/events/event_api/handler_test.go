package event_api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"eventhub/internal/database/migrations"
	"eventhub/internal/events"
	events_db "eventhub/internal/events/db"
	"eventhub/internal/events/event_api"
	"eventhub/internal/logger"
	"eventhub/internal/utils"
)

func setupRouter(t *testing.T) (*chi.Mux, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, migrations.Run(context.Background(), bunDB))

	eventService := events.NewEventService(&events_db.DB{Bun: bunDB})
	handler := event_api.NewHandler(eventService, logger.NewLogger())

	r := chi.NewRouter()
	r.Route("/events", func(r chi.Router) {
		r.Post("/", handler.CreateEvent)
		r.Get("/", handler.ListEvents)
		r.Get("/{eventId}", handler.GetEvent)
		r.Put("/{eventId}", handler.UpdateEvent)
		r.Delete("/{eventId}", handler.DeleteEvent)
	})

	return r, bunDB
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, utils.APIResponse) {
	if body == "" {
		body = "{}"
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCreateEvent(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"T","description":"D","date":"2024-01-01"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Event created successfully", resp.Message)
	require.NotNil(t, resp.Event)
	assert.NotZero(t, resp.Event.ID)
	assert.Equal(t, "T", resp.Event.Title)
	assert.Equal(t, "", resp.Event.Location)
}

func TestCreateEventValidation(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"  ","description":"","location":"Hall"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "Title is required")
	assert.Contains(t, resp.Errors, "Description is required")
	assert.Contains(t, resp.Errors, "Date is required")
}

func TestUpdateEventPartial(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"T","description":"D","date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	path := fmt.Sprintf("/events/%d", resp.Event.ID)

	rec, resp = doJSON(t, r, http.MethodPut, path, `{"location":"Hall"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event updated successfully", resp.Message)
	// Only location changed
	assert.Equal(t, "Hall", resp.Event.Location)
	assert.Equal(t, "T", resp.Event.Title)
	assert.Equal(t, "D", resp.Event.Description)
	assert.Equal(t, "2024-01-01", resp.Event.Date)
}

func TestUpdateEventIgnoresUnknownFields(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"T","description":"D","date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	path := fmt.Sprintf("/events/%d", resp.Event.ID)

	rec, resp = doJSON(t, r, http.MethodPut, path, `{"bogusField":"x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Behaves as an empty update: the current record comes back unchanged
	assert.Equal(t, "T", resp.Event.Title)
	assert.Equal(t, "D", resp.Event.Description)
	assert.Equal(t, "", resp.Event.Location)
}

func TestUpdateEventNotFound(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPut, "/events/999", `{"title":"New"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", resp.Message)
}

func TestDeleteEventTwice(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"T","description":"D","date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	path := fmt.Sprintf("/events/%d", resp.Event.ID)

	rec, resp = doJSON(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event deleted successfully", resp.Message)

	rec, resp = doJSON(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", resp.Message)
}

func TestListEventsOrderedByDate(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, _ := doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"Later","description":"D","date":"2024-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doJSON(t, r, http.MethodPost, "/events/",
		`{"title":"Earlier","description":"D","date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doJSON(t, r, http.MethodGet, "/events/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "Earlier", resp.Events[0].Title)
	assert.Equal(t, "Later", resp.Events[1].Title)
}

func TestGetEventNotFound(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodGet, "/events/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", resp.Message)
}

func TestEventInvalidID(t *testing.T) {
	r, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec, resp := doJSON(t, r, http.MethodGet, "/events/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid event id", resp.Message)
}
