package middleware

import (
	"context"
	"errors"
	"net/http"

	"dalla-server/src/db"
	"dalla-server/src/logger"
)

// errRequestFailed signals the surrounding transaction to roll back after the
// handler reported a failure status.
var errRequestFailed = errors.New("request failed")

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// Transactional scopes each request to one store transaction: the handler
// operates on the transaction-bound store from the context, a success commits,
// and any failure status or panic rolls the whole request back.
func Transactional(store db.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := store.RunInTx(r.Context(), func(ctx context.Context, tx db.Store) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(rec, r.WithContext(db.WithStore(ctx, tx)))
				if rec.status >= http.StatusBadRequest {
					return errRequestFailed
				}
				return nil
			})
			if err != nil && !errors.Is(err, errRequestFailed) {
				log := logger.FromContext(r.Context())
				log.Error().Err(err).Msg("request transaction failed")
			}
		})
	}
}
