package event_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventhub/internal/events"
	"eventhub/internal/events/db"
	"eventhub/internal/logger"
	"eventhub/internal/models"
	"eventhub/internal/utils"
)

type Handler struct {
	EventService *events.EventService
	Logger       *logger.Logger
}

func NewHandler(eventService *events.EventService, l *logger.Logger) *Handler {
	return &Handler{EventService: eventService, Logger: l}
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

func validateCreateEvent(req createEventRequest) []string {
	var errs []string
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, "Description is required")
	}
	if strings.TrimSpace(req.Date) == "" {
		errs = append(errs, "Date is required")
	}
	return errs
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if errs := validateCreateEvent(req); len(errs) > 0 {
		utils.WriteValidationFailed(w, errs)
		return
	}

	event, err := h.EventService.CreateEvent(req.Title, req.Description, req.Date, req.Location)
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("CreateEvent failed: %v", err))
		utils.WriteUnexpected(w, "Error creating event", err)
		return
	}

	h.Logger.Info("EVENTS", fmt.Sprintf("Event %d created", event.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Event created successfully",
		Event:   event,
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.EventService.ListEvents()
	if err != nil {
		utils.WriteUnexpected(w, "Error fetching events", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Events fetched successfully",
		Events:  list,
	})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid event id")
		return
	}

	event, err := h.EventService.GetEvent(id)
	if err != nil {
		if errors.Is(err, db.ErrEventNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, false, "Event not found")
			return
		}
		utils.WriteUnexpected(w, "Error fetching event", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Event fetched successfully",
		Event:   event,
	})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid event id")
		return
	}

	var upd models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	event, err := h.EventService.UpdateEvent(id, upd)
	if err != nil {
		if errors.Is(err, db.ErrEventNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, false, "Event not found")
			return
		}
		utils.WriteUnexpected(w, "Error updating event", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Event updated successfully",
		Event:   event,
	})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid event id")
		return
	}

	deleted, err := h.EventService.DeleteEvent(id)
	if err != nil {
		utils.WriteUnexpected(w, "Error deleting event", err)
		return
	}
	if !deleted {
		utils.WriteMessage(w, http.StatusNotFound, false, "Event not found")
		return
	}

	h.Logger.Info("EVENTS", fmt.Sprintf("Event %d deleted", id))
	utils.WriteMessage(w, http.StatusOK, true, "Event deleted successfully")
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
}
