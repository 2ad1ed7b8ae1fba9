package handlers

import (
	"net/http"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat is a placeholder: it validates the request but generates no answer yet.
func Chat(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeJSON[chatRequest](r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if body.Message == "" {
			writeError(w, r, apperr.Validation("message must not be empty"))
			return
		}
		respondJSON(w, http.StatusOK, chatResponse{
			Reply: "This is a stub. Connect an AI service to generate answers from the user's budgets, goals, and transactions.",
		})
	}
}
