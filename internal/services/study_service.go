package services

import (
	"context"
	"errors"
	"sync"

	"github.com/vytor/flashdeck/internal/deck"
	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/session"
)

// StudyService exposes the study session to the HTTP layer. Every method
// returns the view to render after the operation.
type StudyService interface {
	State(ctx context.Context) models.View
	Decks(ctx context.Context) []models.DeckSummary
	SelectDeck(ctx context.Context, deckID string) (models.View, error)
	Next(ctx context.Context) models.View
	Prev(ctx context.Context) models.View
	Flip(ctx context.Context) models.View
	Shuffle(ctx context.Context) models.View
	ToggleStudyMode(ctx context.Context) models.View
	Reveal(ctx context.Context, generation uint64) models.View
	Command(ctx context.Context, name string) (models.View, error)
	Key(ctx context.Context, key string) (models.View, error)
	DeckStats(ctx context.Context, deckID string) (models.DeckStats, error)
}

type studyService struct {
	mu            sync.Mutex
	manager       *session.Manager
	catalog       *deck.Catalog
	revealDelayMS int
}

// NewStudyService wraps manager. Calls are serialised, so the manager only
// ever sees one operation at a time.
func NewStudyService(manager *session.Manager, catalog *deck.Catalog, revealDelayMS int) StudyService {
	return &studyService{
		manager:       manager,
		catalog:       catalog,
		revealDelayMS: revealDelayMS,
	}
}

// view must be called with mu held.
func (s *studyService) view() models.View {
	m := s.manager
	card := m.CurrentCard()
	return models.View{
		DeckID:        m.ActiveDeckID(),
		Front:         card.Front,
		Back:          m.BackFace(),
		Flipped:       m.Flipped(),
		StudyMode:     m.StudyMode(),
		Revealed:      m.Revealed(),
		Generation:    m.Generation(),
		RevealDelayMS: s.revealDelayMS,
		Progress:      m.Progress(),
		Stats:         m.Stats(m.ActiveDeckID()),
	}
}

func (s *studyService) State(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *studyService) Decks(ctx context.Context) []models.DeckSummary {
	return s.catalog.Summaries()
}

func (s *studyService) SelectDeck(ctx context.Context, deckID string) (models.View, error) {
	log := logger.FromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.SelectDeck(ctx, deckID); err != nil {
		log.Warn("select deck failed: %v", err)
		return s.view(), apperrors.NewInvalidDeckError(deckID, err)
	}
	log.Debug("deck selected: %s", deckID)
	return s.view(), nil
}

func (s *studyService) Next(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Advance(ctx)
	return s.view()
}

func (s *studyService) Prev(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Retreat(ctx)
	return s.view()
}

func (s *studyService) Flip(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Flip(ctx)
	return s.view()
}

func (s *studyService) Shuffle(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Shuffle(ctx)
	return s.view()
}

func (s *studyService) ToggleStudyMode(ctx context.Context) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.ToggleStudyMode(ctx)
	return s.view()
}

// Reveal applies a deferred reveal. A stale generation leaves the view as is.
func (s *studyService) Reveal(ctx context.Context, generation uint64) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Reveal(ctx, session.RevealTicket{Generation: generation})
	return s.view()
}

func (s *studyService) Command(ctx context.Context, name string) (models.View, error) {
	cmd, err := session.ParseCommand(name)
	if err != nil {
		return s.State(ctx), apperrors.NewBadRequestError(err.Error())
	}
	return s.apply(ctx, cmd)
}

func (s *studyService) Key(ctx context.Context, key string) (models.View, error) {
	cmd, ok := session.CommandForKey(key)
	if !ok {
		logger.FromContext(ctx).Debug("no binding for key %q", key)
		return s.State(ctx), apperrors.NewBadRequestError("no command bound to key " + key)
	}
	return s.apply(ctx, cmd)
}

func (s *studyService) apply(ctx context.Context, cmd session.Command) (models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.manager.Apply(ctx, cmd); err != nil {
		if errors.Is(err, session.ErrUnknownCommand) {
			return s.view(), apperrors.NewBadRequestError(err.Error())
		}
		return s.view(), apperrors.NewInternalError(err)
	}
	return s.view(), nil
}

func (s *studyService) DeckStats(ctx context.Context, deckID string) (models.DeckStats, error) {
	if !s.catalog.Has(deckID) {
		return models.DeckStats{}, apperrors.NewInvalidDeckError(deckID, session.ErrInvalidDeck)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Stats(deckID), nil
}
