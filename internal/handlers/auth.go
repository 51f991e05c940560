package handlers

import (
	"errors"
	"net/http"

	"dermascan/internal/logger"
	"dermascan/internal/repository"
	"dermascan/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler creates a new account from form fields username/password.
func RegisterHandler(users repository.UserRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		if username == "" || password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password: %v", err)
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		id, err := users.Create(username, string(hash))
		if err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				writeError(w, http.StatusConflict, "username already exists")
				return
			}
			logger.Error("Failed to create user %s: %v", username, err)
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		logger.Info("Registered user %s (id %d)", username, id)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":       id,
			"username": username,
		})
	}
}

// LoginHandler verifies credentials and establishes a session.
func LoginHandler(users repository.UserRepository, sessions *session.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		user, err := users.GetByUsername(username)
		if err != nil {
			logger.Error("Failed to look up user %s: %v", username, err)
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := sessions.SignIn(w, r, user.ID, user.Username); err != nil {
			logger.Error("Failed to save session for %s: %v", username, err)
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}

		logger.Info("User %s logged in", username)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
		})
	}
}

// LogoutHandler clears the session and redirects to the login page.
func LogoutHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.SignOut(w, r); err != nil {
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
