package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
	"dalla-server/src/middleware"
)

type userUpdateRequest struct {
	Email *string `json:"email"`
}

// GetMe returns the authenticated user's record.
func GetMe(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := db.RequestStore(r.Context(), store)
		user, err := s.GetUserByID(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// UpsertMe is the one endpoint that accepts a verified token without an
// existing user record: it creates the record on first sight of a subject and
// applies a partial email update on every later call. Repeating the same call
// is idempotent aside from the creation timestamp.
func UpsertMe(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.TokenClaims(r.Context())

		// the body is optional: registration works with no payload at all
		var body userUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, r, apperr.Validation("invalid request body"))
			return
		}

		s := db.RequestStore(r.Context(), store)
		user, err := s.GetUserBySub(r.Context(), claims.Subject)
		switch {
		case err == nil:
			if body.Email != nil {
				user, err = s.UpdateUserEmail(r.Context(), user.ID, body.Email)
				if err != nil {
					writeError(w, r, err)
					return
				}
			}
		case errors.Is(err, apperr.ErrNotFound):
			email := body.Email
			if email == nil && claims.Email != "" {
				email = &claims.Email
			}
			user, err = s.CreateUser(r.Context(), claims.Subject, email)
			if err != nil {
				writeError(w, r, err)
				return
			}
		default:
			writeError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
