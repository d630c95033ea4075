package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/denchenko/userdir/internal/core/domain"
	"github.com/denchenko/userdir/internal/log"
	"github.com/go-chi/chi/v5"
)

// UserPayload is the JSON representation of a user.
type UserPayload struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Data UserPayload `json:"data"`
}

// UserListResponse wraps the full listing.
type UserListResponse struct {
	Data  []UserPayload `json:"data"`
	Total int           `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.app.GetAllUsers(r.Context())
	if err != nil {
		log.Errorf("Failed to list users: %v", err)
		writeError(w, statusFor(err), "failed to list users")

		return
	}

	payload := UserListResponse{
		Data:  make([]UserPayload, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		payload.Data = append(payload.Data, toPayload(u))
	}

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id must be an integer")

		return
	}

	user, found, err := s.app.GetUserByID(r.Context(), id)
	if err != nil {
		log.Errorf("Failed to get user %d: %v", id, err)
		writeError(w, statusFor(err), "failed to get user")

		return
	}

	if !found {
		writeError(w, http.StatusNotFound, "user not found")

		return
	}

	writeJSON(w, http.StatusOK, UserResponse{Data: toPayload(user)})
}

// statusFor maps upstream failures to 502 and anything else to 500.
func statusFor(err error) int {
	if domain.KindOf(err) == domain.KindExternalAPI {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func toPayload(u domain.User) UserPayload {
	return UserPayload{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
