package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/interfaces"
)

// AuthHandler handles HTTP requests for authentication and user location.
type AuthHandler struct {
	users interfaces.UserService
}

func NewAuthHandler(users interfaces.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// LoginRequest is the DTO for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// CheckLoginResponse reports whether the presented token is valid.
type CheckLoginResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Error    string `json:"error,omitempty"`
}

// LocationRequest is the DTO for the location update endpoint. Both fields
// set updates the location; both null clears it; one of each is rejected.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates a user by username and password and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}

// Logout godoc
// @Summary      Log out
// @Description  Invalidates the user's current authentication token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}
	if err := h.users.Logout(r.Context(), user.ID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Message: "Logout successful"})
}

// CheckLogin godoc
// @Summary      Check login state
// @Description  Reports whether the token in the Authorization header is valid.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  CheckLoginResponse
// @Failure      401  {object}  CheckLoginResponse
// @Router       /check-login [get]
func (h *AuthHandler) CheckLogin(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if _, err := h.users.Authenticate(r.Context(), token); err == nil {
			respondWithJSON(w, http.StatusOK, CheckLoginResponse{LoggedIn: true})
			return
		}
	}
	respondWithJSON(w, http.StatusUnauthorized, CheckLoginResponse{LoggedIn: false, Error: "Invalid or missing token"})
}

// UpdateLocation godoc
// @Summary      Update user location
// @Description  Stores or clears the user's coordinates. Both must be present or both null.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        location  body  LocationRequest  true  "Coordinates"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/location [put]
func (h *AuthHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthorized)
		return
	}

	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: request must be JSON", app_errors.ErrValidation))
		return
	}

	if err := h.users.UpdateLocation(r.Context(), user.ID, req.Latitude, req.Longitude); err != nil {
		respondWithError(w, err)
		return
	}

	message := "Location updated successfully"
	if req.Latitude == nil && req.Longitude == nil {
		message = "Location removed successfully"
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Message: message})
}
