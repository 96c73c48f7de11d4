package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(pollHandler *PollHandler, healthHandler *HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler.Check)

	r.Route("/polls", func(r chi.Router) {
		r.Post("/create", pollHandler.CreatePoll)
		r.Get("/get", pollHandler.GetPoll)
		r.Get("/list", pollHandler.ListPolls)
		r.Post("/vote", pollHandler.VoteOnPoll)
	})

	return r
}
