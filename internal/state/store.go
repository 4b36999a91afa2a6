// Package state holds the application-state container of a dashboard process.
//
// The Store owns the user session, the portfolio ledger, the navigation state
// and the session-scoped form fields. Mutations run one at a time through
// Update, and every mutation emits change events to subscribers.
package state

import (
	"sync"

	"github.com/epeers/investdash/internal/models"
	log "github.com/sirupsen/logrus"
)

// AppState is the mutable state of the process. It is only touched inside
// Store.Update / Store.View callbacks.
type AppState struct {
	Session           models.UserSession
	Navigation        models.NavigationState
	Holdings          []models.Holding
	Forms             models.FormState
	UpgradePromptOpen bool
	SelectedArticle   *int
	Chat              []models.ChatMessage
}

// Emitter collects the events produced by one mutation.
type Emitter struct {
	events []models.Event
}

// Emit records a change of kind with an optional payload.
func (e *Emitter) Emit(kind models.EventKind, payload any) {
	e.events = append(e.events, models.Event{Kind: kind, Payload: payload})
}

// Store is the application-state container.
type Store struct {
	mu    sync.Mutex
	state AppState

	subMu  sync.Mutex
	subs   map[int]chan models.Event
	nextID int
	seq    uint64
}

// NewStore creates a new Store with the initial state
func NewStore(initial AppState) *Store {
	if initial.Forms.RiskAnswers == nil {
		initial.Forms.RiskAnswers = models.RiskAnswers{}
	}
	return &Store{
		state: initial,
		subs:  make(map[int]chan models.Event),
	}
}

// Update runs fn with exclusive access to the state. Events emitted by fn are
// published in order, and only if fn succeeds.
func (s *Store) Update(fn func(st *AppState, em *Emitter) error) error {
	em := &Emitter{}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.state, em); err != nil {
		return err
	}
	for _, ev := range em.events {
		s.Publish(ev.Kind, ev.Payload)
	}
	return nil
}

// View runs fn with read access to the state. fn must not retain references.
func (s *Store) View(fn func(st *AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Publish sends an event to every subscriber. A subscriber whose buffer is
// full misses the event.
func (s *Store) Publish(kind models.EventKind, payload any) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.seq++
	ev := models.Event{Seq: s.seq, Kind: kind, Payload: payload}
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			log.Warnf("state: subscriber %d is full, dropped %s event %d", id, kind, ev.Seq)
		}
	}
}

// Subscribe registers a listener with the given buffer size. The returned
// function unsubscribes and closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan models.Event, func()) {
	ch := make(chan models.Event, buffer)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// SubscriberCount returns the number of live subscriptions
func (s *Store) SubscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// Snapshot returns a deep copy of the state
func (s *Store) Snapshot() models.StateSnapshot {
	var snap models.StateSnapshot
	s.View(func(st *AppState) {
		snap = models.StateSnapshot{
			Session:           CopySession(st.Session),
			Navigation:        CopyNavigation(st.Navigation),
			Holdings:          append([]models.Holding{}, st.Holdings...),
			Forms:             CopyForms(st.Forms),
			UpgradePromptOpen: st.UpgradePromptOpen,
			Chat:              append([]models.ChatMessage{}, st.Chat...),
		}
		if st.SelectedArticle != nil {
			i := *st.SelectedArticle
			snap.SelectedArticle = &i
		}
	})
	return snap
}

// CopySession returns u with its own copy of the expiry.
func CopySession(u models.UserSession) models.UserSession {
	if u.PremiumExpiry != nil {
		t := *u.PremiumExpiry
		u.PremiumExpiry = &t
	}
	return u
}

// CopyNavigation returns n with its own copy of the pending view.
func CopyNavigation(n models.NavigationState) models.NavigationState {
	if n.PendingGatedView != nil {
		v := *n.PendingGatedView
		n.PendingGatedView = &v
	}
	return n
}

// CopyForms returns f with its own copy of the risk answers.
func CopyForms(f models.FormState) models.FormState {
	answers := make(models.RiskAnswers, len(f.RiskAnswers))
	for k, v := range f.RiskAnswers {
		answers[k] = v
	}
	f.RiskAnswers = answers
	return f
}
