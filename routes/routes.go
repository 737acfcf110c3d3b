package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/khelmitra/scoreboard/handlers"
	"github.com/khelmitra/scoreboard/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	authn *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	sportHandler *handlers.SportHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Authentication
	router.Post("/register/", authHandler.Register)
	router.Post("/login/", authHandler.Login)
	router.Post("/token-auth/", authHandler.TokenAuth)

	// Own profile, authenticated only
	router.Route("/profile", func(r chi.Router) {
		r.Use(authn.Authenticate)
		r.Get("/", profileHandler.GetProfile)
		r.Put("/", profileHandler.UpdateProfile)
		r.Patch("/", profileHandler.UpdateProfile)
	})

	// Public catalog
	router.Get("/sports/", sportHandler.GetAllSports)
	router.Get("/teams/", teamHandler.ListTeams)

	// Matches
	router.Route("/matches", func(r chi.Router) {
		r.Get("/live/", matchHandler.ListLiveMatches)
		r.Get("/upcoming/", matchHandler.ListUpcomingMatches)
		r.Get("/completed/", matchHandler.ListCompletedMatches)
		r.Get("/{matchID}/", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Post("/{matchID}/update_score/", matchHandler.UpdateScore)
		})
	})
}
