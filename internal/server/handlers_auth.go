// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/resume-server/internal/auth"
	"github.com/pdiddy/resume-server/internal/httputil"
	"github.com/pdiddy/resume-server/internal/store"
	"github.com/pdiddy/resume-server/pkg/types"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	creds.Name = strings.TrimSpace(creds.Name)
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	if creds.Name == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "Name is required")
		return
	}
	if !emailPattern.MatchString(creds.Email) {
		httputil.WriteMessage(w, http.StatusBadRequest, "Please provide a valid email")
		return
	}
	if len(creds.Password) < auth.MinPasswordLen {
		httputil.WriteMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		s.logger.Error("hash password", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := s.store.CreateUser(r.Context(), creds.Name, creds.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			httputil.WriteMessage(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error("create user", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.writeAuthResponse(w, http.StatusCreated, "User registered successfully", user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	user, hash, err := s.store.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			httputil.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.logger.Error("look up user", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !auth.CheckPassword(hash, creds.Password) {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	s.writeAuthResponse(w, http.StatusOK, "Login successful", user)
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// Tokens are stateless; the client discards its copy.
	httputil.WriteMessage(w, http.StatusOK, "Logout successful")
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, status int, message string, user *types.User) {
	token, err := auth.GenerateToken(s.secret, user.ID, s.tokenExpiry)
	if err != nil {
		s.logger.Error("sign token", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.WriteJSON(w, status, authResponse{
		Message: message,
		Token:   token,
		User:    userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
