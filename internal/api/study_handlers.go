package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/logger"
)

type selectDeckRequest struct {
	Deck string `json:"deck" validate:"required"`
}

type revealRequest struct {
	Generation uint64 `json:"generation" validate:"required"`
}

type keyRequest struct {
	Key string `json:"key" validate:"required"`
}

func (s *Server) handleStudyPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering study page")

	s.render(w, r, "study.html", pageData{
		"decks": s.StudyService.Decks(r.Context()),
		"view":  s.StudyService.State(r.Context()),
	})
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"decks": s.StudyService.Decks(r.Context()),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.State(r.Context()))
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deck")
	st, err := s.StudyService.DeckStats(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"deck":  deckID,
		"stats": st,
	})
}

func (s *Server) handleSelectDeck(w http.ResponseWriter, r *http.Request) {
	var req selectDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context()).WithField("deck", req.Deck)
	view, err := s.StudyService.SelectDeck(logger.NewContext(r.Context(), log), req.Deck)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("deck selected")
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.Next(r.Context()))
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.Prev(r.Context()))
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.Flip(r.Context()))
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.Shuffle(r.Context()))
}

func (s *Server) handleToggleStudyMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StudyService.ToggleStudyMode(r.Context()))
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.StudyService.Reveal(r.Context(), req.Generation))
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	view, err := s.StudyService.Key(r.Context(), req.Key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.Command(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}
