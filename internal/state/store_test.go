package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/epeers/investdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(AppState{
		Session:    models.NewUserSession(),
		Navigation: models.NavigationState{ActiveView: models.ViewLogin},
	})
}

func TestStore_UpdateEmitsEvents(t *testing.T) {
	s := newTestStore()
	events, cancel := s.Subscribe(4)
	defer cancel()

	err := s.Update(func(st *AppState, em *Emitter) error {
		st.Navigation.ActiveView = models.ViewDashboard
		em.Emit(models.EventNavigation, st.Navigation)
		return nil
	})
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, models.EventNavigation, ev.Kind)
	assert.Equal(t, uint64(1), ev.Seq)
	assert.Equal(t, models.ViewDashboard, s.Snapshot().Navigation.ActiveView)
}

func TestStore_FailedUpdateEmitsNothing(t *testing.T) {
	s := newTestStore()
	events, cancel := s.Subscribe(4)
	defer cancel()

	boom := errors.New("boom")
	err := s.Update(func(st *AppState, em *Emitter) error {
		em.Emit(models.EventSession, nil)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestStore_FullSubscriberDoesNotBlock(t *testing.T) {
	s := newTestStore()
	events, cancel := s.Subscribe(1)
	defer cancel()

	for i := 0; i < 3; i++ {
		s.Publish(models.EventChat, i)
	}

	ev := <-events
	assert.Equal(t, 0, ev.Payload)
	assert.Len(t, events, 0)
}

func TestStore_UnsubscribeClosesChannel(t *testing.T) {
	s := newTestStore()
	events, cancel := s.Subscribe(1)
	assert.Equal(t, 1, s.SubscriberCount())
	cancel()
	cancel()
	assert.Equal(t, 0, s.SubscriberCount())

	_, open := <-events
	assert.False(t, open)

	// publishing with no subscribers is fine
	s.Publish(models.EventNews, nil)
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore()
	pending := models.ViewAskAI
	require.NoError(t, s.Update(func(st *AppState, em *Emitter) error {
		st.Navigation.PendingGatedView = &pending
		st.Forms.RiskAnswers[0] = 3
		return nil
	}))

	snap := s.Snapshot()
	*snap.Navigation.PendingGatedView = models.ViewLogin
	snap.Forms.RiskAnswers[0] = 5

	again := s.Snapshot()
	assert.Equal(t, models.ViewAskAI, *again.Navigation.PendingGatedView)
	assert.Equal(t, 3, again.Forms.RiskAnswers[0])
}

func TestStore_SerializesUpdates(t *testing.T) {
	s := newTestStore()

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.Update(func(st *AppState, em *Emitter) error {
				st.Chat = append(st.Chat, models.ChatMessage{})
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Chat, n)
}

func TestCopyHelpersDoNotAlias(t *testing.T) {
	expiry := time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)
	session := models.UserSession{DisplayName: "budi", PremiumExpiry: &expiry}
	sc := CopySession(session)
	*sc.PremiumExpiry = sc.PremiumExpiry.AddDate(1, 0, 0)
	assert.Equal(t, 2025, session.PremiumExpiry.Year())

	pending := models.ViewAskAI
	nav := models.NavigationState{ActiveView: models.ViewDashboard, PendingGatedView: &pending}
	nc := CopyNavigation(nav)
	*nc.PendingGatedView = models.ViewAnalysis
	assert.Equal(t, models.ViewAskAI, *nav.PendingGatedView)

	forms := models.FormState{RiskAnswers: models.RiskAnswers{0: 3}}
	fc := CopyForms(forms)
	fc.RiskAnswers[0] = 5
	assert.Equal(t, 3, forms.RiskAnswers[0])

	assert.NotNil(t, CopyForms(models.FormState{}).RiskAnswers)
	assert.Nil(t, CopySession(models.UserSession{}).PremiumExpiry)
}
