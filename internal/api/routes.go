package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		handleError(w, req, errors.NewNotFoundError("route", req.URL.Path))
	})

	r.Get("/", s.handleStudyPage)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", s.handleDecks)
		r.Get("/state", s.handleState)
		r.Get("/stats/{deck}", s.handleDeckStats)
		r.Post("/deck", s.handleSelectDeck)
		r.Post("/next", s.handleNext)
		r.Post("/prev", s.handlePrev)
		r.Post("/flip", s.handleFlip)
		r.Post("/shuffle", s.handleShuffle)
		r.Post("/study-mode", s.handleToggleStudyMode)
		r.Post("/reveal", s.handleReveal)
		r.Post("/key", s.handleKey)
		r.Post("/command/{name}", s.handleCommand)
	})
	return r
}
