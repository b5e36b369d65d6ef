package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

func newAuthHandler(userRepo *database.UserRepo, jwtSecret []byte, tokenTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// register creates a new user account with a bcrypt-hashed password.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("register", err))
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if len(req.Password) < 8 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 8 characters"))
			return
		}

		existing, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("user"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: string(hash),
			Enabled:  true,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := newAccessToken(user.ID, h.jwtSecret, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("User registered")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tokenResponse{Token: token, User: &user})
	}
}

// login verifies credentials and issues an access token.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.userRepo.FindByUsername(strings.TrimSpace(req.Username))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !user.Enabled {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := newAccessToken(user.ID, h.jwtSecret, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("User logged in")
		h.responder.WriteJSON(w, tokenResponse{Token: token, User: user})
	}
}
