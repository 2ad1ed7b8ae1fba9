package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
	"dalla-server/src/logger"
	"dalla-server/src/middleware"
	"dalla-server/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// resource is the one generic CRUD component. Each resource type supplies a
// thin configuration of closures; the plumbing (decode, guard, store call,
// status codes, error mapping) is written once. A nil operation is simply not
// routed.
type resource[T any, C any, U any] struct {
	name   string
	list   func(ctx context.Context, s db.Store, userID uuid.UUID, q url.Values) ([]T, error)
	create func(ctx context.Context, s db.Store, userID uuid.UUID, body C) (T, error)
	get    func(ctx context.Context, s db.Store, userID, id uuid.UUID) (T, error)
	update func(ctx context.Context, s db.Store, userID, id uuid.UUID, body U) (T, error)
	remove func(ctx context.Context, s db.Store, userID, id uuid.UUID) error
}

func (rs resource[T, C, U]) List(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := db.RequestStore(r.Context(), store)
		items, err := rs.list(r.Context(), s, middleware.UserID(r.Context()), r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

func (rs resource[T, C, U]) Create(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeJSON[C](r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s := db.RequestStore(r.Context(), store)
		created, err := rs.create(r.Context(), s, middleware.UserID(r.Context()), body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func (rs resource[T, C, U]) Get(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s := db.RequestStore(r.Context(), store)
		item, err := rs.get(r.Context(), s, middleware.UserID(r.Context()), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func (rs resource[T, C, U]) Update(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		body, err := decodeJSON[U](r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s := db.RequestStore(r.Context(), store)
		updated, err := rs.update(r.Context(), s, middleware.UserID(r.Context()), id, body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

func (rs resource[T, C, U]) Delete(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s := db.RequestStore(r.Context(), store)
		if err := rs.remove(r.Context(), s, middleware.UserID(r.Context()), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- shared plumbing ---

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, apperr.Validation("invalid request body")
	}
	return v, nil
}

// pathID parses the {id} path parameter. A malformed id is reported as not
// found, indistinguishable from an absent record.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("record")
	}
	return id, nil
}

func validateName(name, field string, max int) error {
	if name == "" {
		return apperr.Validation(field + " must not be empty")
	}
	if len(name) > max {
		return apperr.Validation(field + " is too long")
	}
	return nil
}

func validatePeriod(start, end models.Date) error {
	if end.Time.Before(start.Time) {
		return apperr.Validation("period_end must be >= period_start")
	}
	return nil
}

// --- query parameter helpers ---

func queryDate(q url.Values, key string) (*models.Date, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperr.Validation("invalid " + key)
	}
	return &d, nil
}

func queryType(q url.Values, key string) (*models.TransactionType, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := models.ParseTransactionType(raw)
	if err != nil {
		return nil, apperr.Validation("invalid " + key)
	}
	return &t, nil
}

func queryUUID(q url.Values, key string) (*uuid.UUID, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation("invalid " + key)
	}
	return &id, nil
}
