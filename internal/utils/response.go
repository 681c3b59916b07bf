package utils

import (
	"encoding/json"
	"net/http"

	"eventhub/internal/models"
)

// APIResponse is the uniform envelope returned by every endpoint. Exactly one
// of the resource fields is set per response.
type APIResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    *models.User   `json:"user,omitempty"`
	Users   []models.User  `json:"users,omitempty"`
	Event   *models.Event  `json:"event,omitempty"`
	Events  []models.Event `json:"events,omitempty"`
	Token   string         `json:"token,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteMessage(w http.ResponseWriter, status int, success bool, message string) {
	WriteJSON(w, status, APIResponse{Success: success, Message: message})
}

// WriteValidationFailed emits a 400 with the itemized error list.
func WriteValidationFailed(w http.ResponseWriter, errs []string) {
	WriteJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// WriteUnexpected emits a 500 and surfaces the underlying message.
func WriteUnexpected(w http.ResponseWriter, message string, err error) {
	WriteJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
