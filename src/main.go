package main

import (
	"context"
	"net/http"

	"dalla-server/src/api"
	"dalla-server/src/auth"
	"dalla-server/src/config"
	"dalla-server/src/db"
	"dalla-server/src/logger"
	"dalla-server/src/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	store, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connection failed")
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	if err := db.SeedDefaultSubcategories(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("subcategory seed failed")
	}

	var verifier middleware.TokenVerifier
	if cfg.AuthConfigured() {
		v, err := auth.NewVerifier(cfg.CognitoIssuer(), cfg.CognitoAppClientID, cfg.CognitoJWKSURL())
		if err != nil {
			log.Fatal().Err(err).Msg("verifier setup failed")
		}
		verifier = v
	} else {
		log.Warn().Msg("cognito settings missing; authenticated routes will return 503")
	}

	router := api.NewRouter(store, verifier, log)

	log.Info().Str("port", cfg.Port).Msg("api server running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
