// Package session implements the deck session state machine: which deck is
// active, where the cursor sits, whether the card is flipped, and the
// per-deck counters that are persisted after every change.
//
// A Manager is not safe for concurrent use. Callers run one operation at a
// time to completion.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vytor/flashdeck/internal/deck"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/stats"
)

// DefaultPlaceholder masks the answer in study mode until it is revealed.
const DefaultPlaceholder = "Click to reveal"

// ErrInvalidDeck is returned when a deck identifier is not in the catalog.
var ErrInvalidDeck = errors.New("invalid deck")

// StatsStore is the persistence port for the counters snapshot.
type StatsStore interface {
	Load(ctx context.Context) (models.Stats, error)
	Save(ctx context.Context, snapshot models.Stats) error
}

// RevealTicket authorises a deferred study-mode reveal for one card load.
type RevealTicket struct {
	Generation uint64
}

type Manager struct {
	catalog             *deck.Catalog
	store               StatsStore
	rng                 *rand.Rand
	shuffleCountsAsView bool
	placeholder         string

	// sequences holds each deck's current card order. Shuffling
	// reorders it in place and the order survives deck switches.
	sequences map[string][]models.Card
	stats     models.Stats

	activeID   string
	cursor     int
	flipped    bool
	studyMode  bool
	revealed   bool
	generation uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the random source used by Shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) {
		m.rng = rng
	}
}

// WithShuffleCountsAsView controls whether Shuffle increments the viewed
// counter like any other card load. Defaults to true.
func WithShuffleCountsAsView(enabled bool) Option {
	return func(m *Manager) {
		m.shuffleCountsAsView = enabled
	}
}

// WithPlaceholder sets the text shown in place of a masked answer.
func WithPlaceholder(text string) Option {
	return func(m *Manager) {
		m.placeholder = text
	}
}

// New loads the persisted counters and activates the catalog's default
// deck, which counts as a view. A missing or unreadable snapshot starts
// every deck at zero. A nil store disables persistence.
func New(ctx context.Context, catalog *deck.Catalog, store StatsStore, opts ...Option) *Manager {
	if store == nil {
		store = nopStore{}
	}
	m := &Manager{
		catalog:             catalog,
		store:               store,
		shuffleCountsAsView: true,
		placeholder:         DefaultPlaceholder,
		sequences:           make(map[string][]models.Card),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, id := range catalog.IDs() {
		d, _ := catalog.Deck(id)
		m.sequences[id] = d.Cards
	}

	log := m.log(ctx)
	snapshot, err := store.Load(ctx)
	switch {
	case errors.Is(err, stats.ErrSnapshotAbsent):
		log.Debug("no stored stats, starting from zero")
	case err != nil:
		log.Warn("ignoring stored stats: %v", err)
	}
	if err != nil {
		snapshot = nil
	}
	m.stats = stats.Merge(snapshot, catalog.IDs())

	m.activeID = catalog.DefaultID()
	m.loadCard(ctx)
	return m
}

func (m *Manager) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx).WithPrefix("session")
}

// loadCard shows the card under the cursor face down, counts the view and
// persists. Every call starts a new generation.
func (m *Manager) loadCard(ctx context.Context) {
	m.resetCard()
	s := m.stats[m.activeID]
	s.Viewed++
	m.stats[m.activeID] = s
	m.persist(ctx)
	m.log(ctx).Debug("card loaded: deck=%s cursor=%d generation=%d", m.activeID, m.cursor, m.generation)
}

func (m *Manager) resetCard() {
	m.flipped = false
	m.revealed = false
	m.generation++
}

// persist writes the snapshot. Failures are logged and otherwise ignored.
func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.stats.Clone()); err != nil {
		m.log(ctx).Warn("failed to persist stats: %v", err)
	}
}

func (m *Manager) active() []models.Card {
	return m.sequences[m.activeID]
}

// SelectDeck makes deckID the active deck and loads its first card. An
// unknown id returns ErrInvalidDeck and changes nothing.
func (m *Manager) SelectDeck(ctx context.Context, deckID string) error {
	if !m.catalog.Has(deckID) {
		m.log(ctx).Debug("rejecting unknown deck %q", deckID)
		return fmt.Errorf("%w: %q", ErrInvalidDeck, deckID)
	}
	m.activeID = deckID
	m.cursor = 0
	m.loadCard(ctx)
	return nil
}

// CurrentCard returns the card under the cursor with its true content.
func (m *Manager) CurrentCard() models.Card {
	return m.active()[m.cursor]
}

// Advance moves to the next card, wrapping from the last to the first.
func (m *Manager) Advance(ctx context.Context) {
	m.cursor = (m.cursor + 1) % len(m.active())
	m.loadCard(ctx)
}

// Retreat moves to the previous card, wrapping from the first to the last.
func (m *Manager) Retreat(ctx context.Context) {
	n := len(m.active())
	m.cursor = (m.cursor - 1 + n) % n
	m.loadCard(ctx)
}

// Flip toggles the card. Only turning it face up counts. In study mode that
// also issues a ticket for the deferred reveal of the answer.
func (m *Manager) Flip(ctx context.Context) (RevealTicket, bool) {
	m.flipped = !m.flipped
	if !m.flipped {
		m.revealed = false
		return RevealTicket{}, false
	}

	s := m.stats[m.activeID]
	s.Flipped++
	m.stats[m.activeID] = s
	m.persist(ctx)

	if m.studyMode {
		return RevealTicket{Generation: m.generation}, true
	}
	return RevealTicket{}, false
}

// Reveal unmasks the answer if the ticket belongs to the current card load
// and the card is still face up in study mode. Stale tickets are ignored.
func (m *Manager) Reveal(ctx context.Context, ticket RevealTicket) bool {
	if ticket.Generation != m.generation || !m.flipped || !m.studyMode {
		m.log(ctx).Debug("ignoring stale reveal: ticket=%d current=%d", ticket.Generation, m.generation)
		return false
	}
	m.revealed = true
	return true
}

// Shuffle reorders the active deck and returns to its first card.
func (m *Manager) Shuffle(ctx context.Context) {
	deck.Shuffle(m.active(), m.rng)
	m.cursor = 0
	if m.shuffleCountsAsView {
		m.loadCard(ctx)
		return
	}
	m.resetCard()
}

// ToggleStudyMode switches study mode. A face-up card is turned back down.
func (m *Manager) ToggleStudyMode(ctx context.Context) {
	m.studyMode = !m.studyMode
	m.log(ctx).Debug("study mode %t", m.studyMode)
	if m.flipped {
		m.Flip(ctx)
	}
}

// Stats returns the counters for deckID; unknown ids read as zero.
func (m *Manager) Stats(deckID string) models.DeckStats {
	return m.stats[deckID]
}

// Snapshot returns a copy of every deck's counters.
func (m *Manager) Snapshot() models.Stats {
	return m.stats.Clone()
}

// BackFace is the answer text to display: the placeholder while study mode
// masks an unrevealed card, the true answer otherwise.
func (m *Manager) BackFace() string {
	if m.studyMode && !m.revealed {
		return m.placeholder
	}
	return m.CurrentCard().Back
}

// Progress returns the 1-based position within the active deck.
func (m *Manager) Progress() models.Progress {
	n := len(m.active())
	return models.Progress{
		Position: m.cursor + 1,
		Total:    n,
		Percent:  float64(m.cursor+1) * 100 / float64(n),
	}
}

func (m *Manager) ActiveDeckID() string { return m.activeID }
func (m *Manager) Cursor() int          { return m.cursor }
func (m *Manager) Len() int             { return len(m.active()) }
func (m *Manager) Flipped() bool        { return m.flipped }
func (m *Manager) StudyMode() bool      { return m.studyMode }
func (m *Manager) Revealed() bool       { return m.revealed }
func (m *Manager) Generation() uint64   { return m.generation }

type nopStore struct{}

func (nopStore) Load(context.Context) (models.Stats, error) { return nil, stats.ErrSnapshotAbsent }
func (nopStore) Save(context.Context, models.Stats) error   { return nil }
