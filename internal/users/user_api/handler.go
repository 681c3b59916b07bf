package user_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventhub/internal/auth"
	"eventhub/internal/logger"
	"eventhub/internal/models"
	"eventhub/internal/users"
	"eventhub/internal/users/db"
	"eventhub/internal/utils"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	UserService  *users.UserService
	TokenService *auth.TokenService
	Logger       *logger.Logger
}

func NewHandler(userService *users.UserService, tokenService *auth.TokenService, l *logger.Logger) *Handler {
	return &Handler{
		UserService:  userService,
		TokenService: tokenService,
		Logger:       l,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateSignup(email, password string) []string {
	var errs []string

	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Invalid email format")
	}

	if strings.TrimSpace(password) == "" {
		errs = append(errs, "Password is required")
	} else if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	return errs
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if errs := validateSignup(req.Email, req.Password); len(errs) > 0 {
		utils.WriteValidationFailed(w, errs)
		return
	}

	user, err := h.UserService.Signup(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, db.ErrEmailExists) {
			utils.WriteMessage(w, http.StatusConflict, false, "User with this email already exists")
			return
		}
		h.Logger.Error("USERS", fmt.Sprintf("Signup failed for %s: %v", req.Email, err))
		utils.WriteUnexpected(w, "Error creating user", err)
		return
	}

	h.Logger.Info("USERS", fmt.Sprintf("User %d created", user.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "User created successfully",
		User:    user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Email and password are required")
		return
	}

	user, err := h.UserService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.Logger.LogSecurity("LOGIN_FAILED", fmt.Sprintf("rejected login for %s", req.Email))
			utils.WriteMessage(w, http.StatusUnauthorized, false, "Invalid email or password")
			return
		}
		utils.WriteUnexpected(w, "Error during login", err)
		return
	}

	token, err := h.TokenService.Issue(user.ID, user.Email)
	if err != nil {
		utils.WriteUnexpected(w, "Error during login", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// Me returns the account behind the bearer token on the request.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteMessage(w, http.StatusUnauthorized, false, "Authentication required")
		return
	}

	user, err := h.UserService.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, false, "User not found")
			return
		}
		utils.WriteUnexpected(w, "Error fetching user", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User fetched successfully",
		User:    user,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.UserService.ListUsers()
	if err != nil {
		utils.WriteUnexpected(w, "Error fetching users", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Users fetched successfully",
		Users:   list,
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}

	user, err := h.UserService.GetUser(id)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, false, "User not found")
			return
		}
		utils.WriteUnexpected(w, "Error fetching user", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User fetched successfully",
		User:    user,
	})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	var errs []string
	if upd.Email != nil && !emailRegex.MatchString(*upd.Email) {
		errs = append(errs, "Invalid email format")
	}
	if upd.Password != nil && len(*upd.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	if len(errs) > 0 {
		utils.WriteValidationFailed(w, errs)
		return
	}

	user, err := h.UserService.UpdateUser(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrUserNotFound):
			utils.WriteMessage(w, http.StatusNotFound, false, "User not found")
		case errors.Is(err, db.ErrEmailExists):
			utils.WriteMessage(w, http.StatusConflict, false, "User with this email already exists")
		default:
			utils.WriteUnexpected(w, "Error updating user", err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User updated successfully",
		User:    user,
	})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}

	deleted, err := h.UserService.DeleteUser(id)
	if err != nil {
		utils.WriteUnexpected(w, "Error deleting user", err)
		return
	}
	if !deleted {
		utils.WriteMessage(w, http.StatusNotFound, false, "User not found")
		return
	}

	h.Logger.Info("USERS", fmt.Sprintf("User %d deleted", id))
	utils.WriteMessage(w, http.StatusOK, true, "User deleted successfully")
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
}
