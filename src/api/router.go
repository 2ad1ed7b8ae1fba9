package api

import (
	"net/http"

	"dalla-server/src/db"
	"dalla-server/src/handlers"
	"dalla-server/src/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(store db.Store, verifier middleware.TokenVerifier, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Every data route runs inside a request-scoped transaction: a handler
	// that ends with an error status leaves nothing behind.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Transactional(store))

		// Registration only needs a verified token, not an existing record.
		r.With(middleware.RequireToken(verifier)).Put("/users/me", handlers.UpsertMe(store))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(verifier, store))

			r.Get("/users/me", handlers.GetMe(store))

			r.Get("/wallets", handlers.ListWallets(store))
			r.Post("/wallets", handlers.CreateWallet(store))
			r.Get("/wallets/{id}", handlers.GetWallet(store))
			r.Put("/wallets/{id}", handlers.UpdateWallet(store))
			r.Delete("/wallets/{id}", handlers.DeleteWallet(store))

			r.Get("/subcategories", handlers.ListSubcategories(store))
			r.Post("/subcategories", handlers.CreateSubcategory(store))
			r.Put("/subcategories/{id}", handlers.UpdateSubcategory(store))
			r.Delete("/subcategories/{id}", handlers.DeleteSubcategory(store))

			r.Get("/transactions", handlers.ListTransactions(store))
			r.Post("/transactions", handlers.CreateTransaction(store))
			r.Get("/transactions/{id}", handlers.GetTransaction(store))
			r.Put("/transactions/{id}", handlers.UpdateTransaction(store))
			r.Delete("/transactions/{id}", handlers.DeleteTransaction(store))

			r.Get("/budgets", handlers.ListBudgets(store))
			r.Post("/budgets", handlers.CreateBudget(store))
			r.Get("/budgets/{id}", handlers.GetBudget(store))
			r.Put("/budgets/{id}", handlers.UpdateBudget(store))
			r.Delete("/budgets/{id}", handlers.DeleteBudget(store))

			r.Get("/goals", handlers.ListGoals(store))
			r.Post("/goals", handlers.CreateGoal(store))
			r.Get("/goals/{id}", handlers.GetGoal(store))
			r.Put("/goals/{id}", handlers.UpdateGoal(store))
			r.Delete("/goals/{id}", handlers.DeleteGoal(store))

			r.Post("/chat", handlers.Chat(store))
		})
	})

	return r
}
